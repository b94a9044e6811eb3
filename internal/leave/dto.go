package leave

import (
	"errors"
	"time"

	"github.com/frahmantamala/employee-portal/internal/core/datamodel"
)

// AddLeaveDTO is the draft a user submits. After submission the
// request is server-owned.
type AddLeaveDTO struct {
	Category  string    `json:"category"`
	LeaveType string    `json:"leave_type"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Reason    string    `json:"reason"`
}

func (dto AddLeaveDTO) Validate() error {
	if dto.Category == "" {
		return errors.New("category is required")
	}
	switch dto.LeaveType {
	case datamodel.LeaveTypeHalfDay, datamodel.LeaveTypeSingle, datamodel.LeaveTypeMultiDay:
	default:
		return errors.New("leave type must be half_day, single_day or multi_day")
	}
	if dto.StartDate.IsZero() {
		return errors.New("start date is required")
	}
	if dto.Reason == "" {
		return errors.New("reason is required")
	}

	switch dto.LeaveType {
	case datamodel.LeaveTypeMultiDay:
		if dto.EndDate.IsZero() {
			return errors.New("end date is required for multi day leave")
		}
		if dto.EndDate.Before(dto.StartDate) {
			return errors.New("end date cannot be before start date")
		}
	default:
		if !dto.EndDate.IsZero() && !dto.EndDate.Equal(dto.StartDate) {
			return errors.New("end date must match start date for half or single day leave")
		}
	}
	return nil
}

type RejectLeaveDTO struct {
	Reason string `json:"reason"`
}

func (dto RejectLeaveDTO) Validate() error {
	if dto.Reason == "" {
		return errors.New("reason is required when rejecting a leave")
	}
	return nil
}

type listResponse struct {
	Data []datamodel.LeaveRequest `json:"data"`
}

type leaveResponse struct {
	Data    datamodel.LeaveRequest `json:"data"`
	Message string                 `json:"message"`
}

type employeesResponse struct {
	Data []datamodel.LeaveEmployee `json:"data"`
}
