package parser

import "droneid/internal/odid"

// Result holds every message found in one input and the records decoded from them
type Result struct {
	Messages    []*odid.Message
	BasicIDs    []*odid.BasicID
	Locations   []*odid.Location
	SelfIDs     []*odid.SelfID
	Systems     []*odid.System
	OperatorIDs []*odid.OperatorID

	// Skipped counts messages without a decoded record (Auth, Packed, unknown types)
	Skipped int

	records []odid.Record
}

// TotalMessages is the number of classified messages
func (r *Result) TotalMessages() int {
	return len(r.Messages)
}

// TotalRecords is the number of decoded records across all types
func (r *Result) TotalRecords() int {
	return len(r.BasicIDs) + len(r.Locations) + len(r.SelfIDs) + len(r.Systems) + len(r.OperatorIDs)
}

// IsEmpty reports whether no record was decoded
func (r *Result) IsEmpty() bool {
	return r.TotalRecords() == 0
}

// HasMessages reports whether any message was found
func (r *Result) HasMessages() bool {
	return len(r.Messages) > 0
}

// FirstBasicID returns the first decoded Basic ID record, or nil
func (r *Result) FirstBasicID() *odid.BasicID {
	if len(r.BasicIDs) == 0 {
		return nil
	}
	return r.BasicIDs[0]
}

// FirstLocation returns the first decoded Location record, or nil
func (r *Result) FirstLocation() *odid.Location {
	if len(r.Locations) == 0 {
		return nil
	}
	return r.Locations[0]
}

// FirstSelfID returns the first decoded Self ID record, or nil
func (r *Result) FirstSelfID() *odid.SelfID {
	if len(r.SelfIDs) == 0 {
		return nil
	}
	return r.SelfIDs[0]
}

// FirstSystem returns the first decoded System record, or nil
func (r *Result) FirstSystem() *odid.System {
	if len(r.Systems) == 0 {
		return nil
	}
	return r.Systems[0]
}

// FirstOperatorID returns the first decoded Operator ID record, or nil
func (r *Result) FirstOperatorID() *odid.OperatorID {
	if len(r.OperatorIDs) == 0 {
		return nil
	}
	return r.OperatorIDs[0]
}

// Records returns the decoded records in message order
func (r *Result) Records() []odid.Record {
	return r.records
}

// Merge appends the contents of other to r
func (r *Result) Merge(other *Result) {
	if other == nil {
		return
	}
	r.Messages = append(r.Messages, other.Messages...)
	r.BasicIDs = append(r.BasicIDs, other.BasicIDs...)
	r.Locations = append(r.Locations, other.Locations...)
	r.SelfIDs = append(r.SelfIDs, other.SelfIDs...)
	r.Systems = append(r.Systems, other.Systems...)
	r.OperatorIDs = append(r.OperatorIDs, other.OperatorIDs...)
	r.Skipped += other.Skipped
	r.records = append(r.records, other.records...)
}

func (r *Result) add(rec odid.Record) {
	r.records = append(r.records, rec)
	switch v := rec.(type) {
	case *odid.BasicID:
		r.BasicIDs = append(r.BasicIDs, v)
	case *odid.Location:
		r.Locations = append(r.Locations, v)
	case *odid.SelfID:
		r.SelfIDs = append(r.SelfIDs, v)
	case *odid.System:
		r.Systems = append(r.Systems, v)
	case *odid.OperatorID:
		r.OperatorIDs = append(r.OperatorIDs, v)
	}
}
