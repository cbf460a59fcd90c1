package interfaces

type SchedulerInterface interface {
	Init()
	Stop()
	Warm() error
}
