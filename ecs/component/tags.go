package component

type IslandTag struct{}

var IslandTagComponent = NewComponent[IslandTag]()

type SkyTag struct{}

var SkyTagComponent = NewComponent[SkyTag]()

type CameraTag struct{}

var CameraTagComponent = NewComponent[CameraTag]()
