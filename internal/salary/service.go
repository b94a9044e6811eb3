package salary

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/frahmantamala/employee-portal/internal"
	"github.com/frahmantamala/employee-portal/internal/api"
	"github.com/frahmantamala/employee-portal/internal/core/datamodel"
	"github.com/frahmantamala/employee-portal/internal/core/request"
)

const (
	opSlip    = "salary.slip"
	opPackage = "salary.package"
)

// DefaultYearsBack bounds the annual-package fallback loop.
const DefaultYearsBack = 4

type Service struct {
	api      *api.Client
	store    Store
	tracker  *request.Tracker
	sessions Sessions
	writer   DocumentWriter
	logger   *slog.Logger
}

func NewService(apiClient *api.Client, store Store, tracker *request.Tracker, sessions Sessions, writer DocumentWriter, logger *slog.Logger) *Service {
	return &Service{
		api:      apiClient,
		store:    store,
		tracker:  tracker,
		sessions: sessions,
		writer:   writer,
		logger:   logger,
	}
}

// FetchSlip loads the salary slip for one month.
func (s *Service) FetchSlip(ctx context.Context, dto SlipQueryDTO) error {
	if err := dto.Validate(); err != nil {
		return internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}
	if err := s.sessions.EnsureSession(); err != nil {
		return err
	}

	seq := s.tracker.Begin(opSlip)
	s.store.UpdateSalary(func(st *State) { st.Slip.Begin() })

	query := url.Values{}
	query.Set("month", strconv.Itoa(dto.Month))
	query.Set("year", strconv.Itoa(dto.Year))

	var resp slipResponse
	if err := s.api.Get(ctx, "/salary/slip", query, &resp); err != nil {
		appErr := s.normalizeSlipError(err, dto)
		if s.tracker.Latest(opSlip, seq) {
			s.store.UpdateSalary(func(st *State) { st.Slip.Fail(appErr.Message) })
		}
		return appErr
	}

	if s.tracker.Latest(opSlip, seq) {
		s.store.UpdateSalary(func(st *State) { st.Slip.Resolve(resp.Data) })
	}
	return nil
}

// FetchAnnualPackage walks back from startYear looking for package
// data. A 404 means "no data for that year" and the loop moves to the
// previous one; a 401 or 500 is an auth/server failure and aborts
// immediately without trying further years.
func (s *Service) FetchAnnualPackage(ctx context.Context, startYear, yearsBack int) error {
	if err := s.sessions.EnsureSession(); err != nil {
		return err
	}
	if yearsBack <= 0 {
		yearsBack = DefaultYearsBack
	}

	seq := s.tracker.Begin(opPackage)
	s.store.UpdateSalary(func(st *State) { st.Package.Begin() })

	for year := startYear; year > startYear-yearsBack; year-- {
		pkg, err := s.fetchPackageYear(ctx, year)
		if err == nil {
			pkg.Year = year
			if s.tracker.Latest(opPackage, seq) {
				s.store.UpdateSalary(func(st *State) { st.Package.Resolve(pkg) })
			}
			s.logger.Info("annual package loaded", "year", year, "requested_year", startYear)
			return nil
		}

		status := internal.StatusOf(err)
		if status == http.StatusNotFound {
			s.logger.Debug("no package data for year, trying previous", "year", year)
			continue
		}

		appErr := internal.Normalize(err, "could not load annual package")
		if s.tracker.Latest(opPackage, seq) {
			s.store.UpdateSalary(func(st *State) { st.Package.Fail(appErr.Message) })
		}
		return appErr
	}

	appErr := &internal.AppError{
		Type:    internal.ErrorTypeServer,
		Code:    internal.ErrCodeNoData,
		Message: fmt.Sprintf("no annual package data in the last %d years", yearsBack),
	}
	if s.tracker.Latest(opPackage, seq) {
		s.store.UpdateSalary(func(st *State) { st.Package.Fail(appErr.Message) })
	}
	return appErr
}

func (s *Service) fetchPackageYear(ctx context.Context, year int) (datamodel.AnnualPackage, error) {
	query := url.Values{}
	query.Set("year", strconv.Itoa(year))

	var resp packageResponse
	if err := s.api.Get(ctx, "/salary/annual-package", query, &resp); err != nil {
		return datamodel.AnnualPackage{}, err
	}
	return resp.Data, nil
}

// GenerateSlipDocument renders the fetched slip to HTML and hands it
// to the document writer, recording the artifact path in the slice.
func (s *Service) GenerateSlipDocument() (string, error) {
	st := s.store.SalaryState()
	if !st.Slip.Fulfilled() {
		return "", internal.NewValidationError("no salary slip loaded", internal.ErrCodeNoData)
	}

	html, err := RenderSlip(st.Slip.Data)
	if err != nil {
		return "", &internal.AppError{
			Type:    internal.ErrorTypeValidation,
			Code:    internal.ErrCodeRenderFailed,
			Message: "could not render salary slip",
			Cause:   err,
		}
	}

	name := fmt.Sprintf("salary-slip-%d-%02d", st.Slip.Data.Year, st.Slip.Data.Month)
	path, err := s.writer.Write(name, html)
	if err != nil {
		return "", &internal.AppError{
			Type:    internal.ErrorTypeValidation,
			Code:    internal.ErrCodeStorageFailed,
			Message: "could not write salary slip document",
			Cause:   err,
		}
	}

	s.store.UpdateSalary(func(st *State) { st.SlipPath = path })
	return path, nil
}

// GeneratePackageDocument renders the fetched annual package.
func (s *Service) GeneratePackageDocument() (string, error) {
	st := s.store.SalaryState()
	if !st.Package.Fulfilled() {
		return "", internal.NewValidationError("no annual package loaded", internal.ErrCodeNoData)
	}

	html, err := RenderPackage(st.Package.Data)
	if err != nil {
		return "", &internal.AppError{
			Type:    internal.ErrorTypeValidation,
			Code:    internal.ErrCodeRenderFailed,
			Message: "could not render annual package",
			Cause:   err,
		}
	}

	path, err := s.writer.Write(fmt.Sprintf("annual-package-%d", st.Package.Data.Year), html)
	if err != nil {
		return "", &internal.AppError{
			Type:    internal.ErrorTypeValidation,
			Code:    internal.ErrCodeStorageFailed,
			Message: "could not write annual package document",
			Cause:   err,
		}
	}

	s.store.UpdateSalary(func(st *State) { st.PackagePath = path })
	return path, nil
}

// Reset restores the whole salary slice, used when the screen is
// revisited.
func (s *Service) Reset() {
	s.store.UpdateSalary(func(st *State) {
		st.Slip.Reset()
		st.Package.Reset()
		st.SlipPath = ""
		st.PackagePath = ""
	})
}

func (s *Service) normalizeSlipError(err error, dto SlipQueryDTO) *internal.AppError {
	if internal.StatusOf(err) == http.StatusNotFound {
		return &internal.AppError{
			Type:       internal.ErrorTypeServer,
			Code:       internal.ErrCodeNoData,
			Message:    fmt.Sprintf("no salary data for %d/%d", dto.Month, dto.Year),
			StatusCode: http.StatusNotFound,
		}
	}
	return internal.Normalize(err, "could not load salary slip")
}
