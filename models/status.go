package models

// LodgingStatus is the lifecycle state of a lodging reservation.
// Happy path: pending -> confirmed -> checked_in -> checked_out.
type LodgingStatus string

const (
	LodgingPending    LodgingStatus = "pending"
	LodgingConfirmed  LodgingStatus = "confirmed"
	LodgingCheckedIn  LodgingStatus = "checked_in"
	LodgingCheckedOut LodgingStatus = "checked_out"
	LodgingCancelled  LodgingStatus = "cancelled"
	LodgingRejected   LodgingStatus = "rejected"
)

// lodgingTransitions is the single source of truth for allowed status
// changes. Anything not listed here is rejected, including every
// transition out of a terminal status.
var lodgingTransitions = map[LodgingStatus][]LodgingStatus{
	LodgingPending:   {LodgingConfirmed, LodgingCancelled, LodgingRejected},
	LodgingConfirmed: {LodgingCheckedIn, LodgingCancelled},
	LodgingCheckedIn: {LodgingCheckedOut},
}

func (s LodgingStatus) Valid() bool {
	switch s {
	case LodgingPending, LodgingConfirmed, LodgingCheckedIn,
		LodgingCheckedOut, LodgingCancelled, LodgingRejected:
		return true
	}
	return false
}

func (s LodgingStatus) IsTerminal() bool {
	return s == LodgingCheckedOut || s == LodgingCancelled || s == LodgingRejected
}

func (s LodgingStatus) CanTransitionTo(target LodgingStatus) bool {
	for _, allowed := range lodgingTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// ServiceStatus is the lifecycle state of a service reservation.
// Happy path: pending -> confirmed -> in_progress -> completed.
type ServiceStatus string

const (
	ServicePending    ServiceStatus = "pending"
	ServiceConfirmed  ServiceStatus = "confirmed"
	ServiceInProgress ServiceStatus = "in_progress"
	ServiceCompleted  ServiceStatus = "completed"
	ServiceCancelled  ServiceStatus = "cancelled"
	ServiceRejected   ServiceStatus = "rejected"
)

var serviceTransitions = map[ServiceStatus][]ServiceStatus{
	ServicePending:    {ServiceConfirmed, ServiceCancelled, ServiceRejected},
	ServiceConfirmed:  {ServiceInProgress, ServiceCancelled},
	ServiceInProgress: {ServiceCompleted, ServiceCancelled},
}

func (s ServiceStatus) Valid() bool {
	switch s {
	case ServicePending, ServiceConfirmed, ServiceInProgress,
		ServiceCompleted, ServiceCancelled, ServiceRejected:
		return true
	}
	return false
}

func (s ServiceStatus) IsTerminal() bool {
	return s == ServiceCompleted || s == ServiceCancelled || s == ServiceRejected
}

func (s ServiceStatus) CanTransitionTo(target ServiceStatus) bool {
	for _, allowed := range serviceTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// OpenLodgingStatuses lists the statuses that still hold (or may still
// hold) a capacity commitment. Used when guarding hostel deletion.
var OpenLodgingStatuses = []LodgingStatus{LodgingPending, LodgingConfirmed, LodgingCheckedIn}

// OpenServiceStatuses lists the service reservation statuses that are not
// terminal yet; expiry reporting only looks at pending and confirmed.
var OpenServiceStatuses = []ServiceStatus{ServicePending, ServiceConfirmed, ServiceInProgress}
