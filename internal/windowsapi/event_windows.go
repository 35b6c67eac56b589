//go:build windows

package windowsapi

import "unsafe"

// EventDescriptor is EVENT_DESCRIPTOR, the fixed header of an emitted event.
type EventDescriptor struct {
	Id      uint16
	Version uint8
	Channel uint8
	Level   uint8
	Opcode  uint8
	Task    uint16
	Keyword uint64
}

// EventDataDescriptor is EVENT_DATA_DESCRIPTOR: one pointer/length pair
// referencing a block of user data for EventWrite.
type EventDataDescriptor struct {
	Ptr      uint64
	Size     uint32
	Reserved uint32
}

// NewEventDataDescriptor points a data descriptor at data. The caller must
// keep data alive until the EventWrite call using it returns; the descriptor
// stores the address as an integer, invisible to the garbage collector.
func NewEventDataDescriptor(data []byte) EventDataDescriptor {
	d := EventDataDescriptor{Size: uint32(len(data))}
	if len(data) > 0 {
		d.Ptr = uint64(uintptr(unsafe.Pointer(&data[0])))
	}
	return d
}
