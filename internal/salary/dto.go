package salary

import (
	"errors"
	"time"

	"github.com/frahmantamala/employee-portal/internal/core/datamodel"
)

type SlipQueryDTO struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

func (dto SlipQueryDTO) Validate() error {
	if dto.Month < 1 || dto.Month > 12 {
		return errors.New("month must be between 1 and 12")
	}
	if dto.Year < 2000 || dto.Year > time.Now().Year() {
		return errors.New("year is out of range")
	}
	return nil
}

type slipResponse struct {
	Data datamodel.SalarySlip `json:"data"`
}

type packageResponse struct {
	Data datamodel.AnnualPackage `json:"data"`
}
