// Package stagescript runs the tengo hook that decorates stage popup cards.
package stagescript

import (
	"errors"
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/folio/ecs/component"
)

// ErrNoRuntime is returned when a nil runtime is asked for a card.
var ErrNoRuntime = errors.New("stagescript: nil runtime")

// The user script defines card(stage, card); this tail calls it once per run.
const dispatchScript = `
__result := card(__stage, __card)
`

// Runtime is a compiled stage script. It is not safe for concurrent use.
type Runtime struct {
	path     string
	compiled *tengo.Compiled
}

// Compile compiles src, which must define a card(stage, card) function.
func Compile(path string, src []byte) (*Runtime, error) {
	script := tengo.NewScript(append(append([]byte(nil), src...), dispatchScript...))
	_ = script.Add("__stage", 0)
	_ = script.Add("__card", map[string]interface{}{})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("stagescript: compile %s: %w", path, err)
	}
	return &Runtime{path: path, compiled: compiled}, nil
}

// Path returns the script path the runtime was compiled from.
func (rt *Runtime) Path() string {
	if rt == nil {
		return ""
	}
	return rt.path
}

// Card runs the script for stage and returns the card it produced. Fields
// the script leaves out keep their value from base. When the script returns
// undefined, base is returned unchanged.
func (rt *Runtime) Card(stage int, base component.StageCard) (component.StageCard, error) {
	if rt == nil || rt.compiled == nil {
		return base, ErrNoRuntime
	}
	if err := rt.compiled.Set("__stage", stage); err != nil {
		return base, fmt.Errorf("stagescript: %s: set stage: %w", rt.path, err)
	}
	if err := rt.compiled.Set("__card", map[string]interface{}{
		"title": base.Title,
		"body":  base.Body,
		"link":  base.Link,
	}); err != nil {
		return base, fmt.Errorf("stagescript: %s: set card: %w", rt.path, err)
	}
	if err := rt.compiled.Run(); err != nil {
		return base, fmt.Errorf("stagescript: %s: run: %w", rt.path, err)
	}

	result := rt.compiled.Get("__result")
	if result == nil || result.IsUndefined() {
		return base, nil
	}
	fields := result.Map()
	if fields == nil {
		return base, fmt.Errorf("stagescript: %s: card returned %s, want map", rt.path, result.ValueType())
	}

	out := base
	if s, ok := fields["title"].(string); ok {
		out.Title = s
	}
	if s, ok := fields["body"].(string); ok {
		out.Body = s
	}
	if s, ok := fields["link"].(string); ok {
		out.Link = s
	}
	return out, nil
}
