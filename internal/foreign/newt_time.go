package foreign

import (
	"time"

	"newt/internal/object"
)

func newTimeModule() *object.Record {
	m := object.NewRecord()
	m.Register("clock", hostFunc("time.clock", 0, timeClock))
	m.Register("sleep", hostFunc("time.sleep", 1, timeSleep))
	return m
}

func timeClock(args []object.Value) object.Value {
	return &object.Integer{Value: time.Now().UnixMilli()}
}

func timeSleep(args []object.Value) object.Value {
	millis, errObj := unpackInteger(args[0], "time.sleep")
	if errObj != nil {
		return errObj
	}
	if millis < 0 {
		return newError("argument to `time.sleep` must be non-negative, got %d", millis)
	}

	time.Sleep(time.Duration(millis) * time.Millisecond)
	return UNDEFINED
}
