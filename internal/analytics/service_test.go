package analytics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi"
	json "github.com/goccy/go-json"
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/frahmantamala/employee-portal/internal"
	"github.com/frahmantamala/employee-portal/internal/api"
	"github.com/frahmantamala/employee-portal/internal/core/datamodel"
	"github.com/frahmantamala/employee-portal/internal/core/request"
	"github.com/frahmantamala/employee-portal/pkg/logger"
)

func TestAnalytics(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Analytics Module Suite")
}

type memStore struct {
	mu    sync.Mutex
	state State
}

func (m *memStore) UpdateAnalytics(fn func(*State)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	fn(&m.state)
}

func (m *memStore) AnalyticsState() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *memStore) Token() string { return "test-token" }

type stubSessions struct {
	err error
}

func (s stubSessions) EnsureSession() error { return s.err }

var _ = ginkgo.Describe("AnalyticsService", func() {
	var (
		server  *httptest.Server
		router  *chi.Mux
		store   *memStore
		service *Service
	)

	ginkgo.BeforeEach(func() {
		router = chi.NewRouter()
		server = httptest.NewServer(router)
		store = &memStore{}

		client := api.NewClient(api.Config{BaseURL: server.URL}, store)
		service = NewService(client, store, request.NewTracker(), stubSessions{}, logger.L())
	})

	ginkgo.AfterEach(func() {
		server.Close()
	})

	ginkgo.Describe("FetchStatus", func() {
		ginkgo.It("should load the status history", func() {
			// Given
			router.Get("/status/employee", func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(map[string]any{
					"data": []datamodel.EmployeeStatus{
						{ID: 1, Status: datamodel.WorkStatusApproved},
						{ID: 2, Status: datamodel.WorkStatusPending},
					},
				})
			})

			// When
			err := service.FetchStatus(context.Background())

			// Then
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			status := store.AnalyticsState().Status
			gomega.Expect(status.Fulfilled()).To(gomega.BeTrue())
			gomega.Expect(status.Data).To(gomega.HaveLen(2))
		})

		ginkgo.It("should keep the stale history when a refresh fails", func() {
			// Given
			store.UpdateAnalytics(func(st *State) {
				st.Status.Resolve([]datamodel.EmployeeStatus{{ID: 1}})
			})
			router.Get("/status/employee", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			})

			// When
			err := service.FetchStatus(context.Background())

			// Then
			gomega.Expect(err).To(gomega.HaveOccurred())
			status := store.AnalyticsState().Status
			gomega.Expect(status.Rejected()).To(gomega.BeTrue())
			gomega.Expect(status.Data).To(gomega.HaveLen(1))
		})
	})

	ginkgo.Describe("Decide", func() {
		ginkgo.It("should post an approval for the given entry", func() {
			// Given
			router.Post("/status/{id}/approve", func(w http.ResponseWriter, r *http.Request) {
				gomega.Expect(chi.URLParam(r, "id")).To(gomega.Equal("9"))
				json.NewEncoder(w).Encode(map[string]any{
					"data": datamodel.EmployeeStatus{ID: 9, Status: datamodel.WorkStatusApproved},
				})
			})

			// When
			err := service.Decide(context.Background(), 9, true)

			// Then
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			decide := store.AnalyticsState().Decide
			gomega.Expect(decide.Fulfilled()).To(gomega.BeTrue())
			gomega.Expect(decide.Data.Status).To(gomega.Equal(datamodel.WorkStatusApproved))
		})

		ginkgo.It("should post a rejection when approve is false", func() {
			// Given
			var path string
			router.Post("/status/{id}/reject", func(w http.ResponseWriter, r *http.Request) {
				path = r.URL.Path
				json.NewEncoder(w).Encode(map[string]any{
					"data": datamodel.EmployeeStatus{ID: 9, Status: datamodel.WorkStatusRejected},
				})
			})

			// When
			err := service.Decide(context.Background(), 9, false)

			// Then
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(path).To(gomega.Equal("/status/9/reject"))
		})
	})

	ginkgo.Describe("FetchHours", func() {
		ginkgo.It("should query the requested month", func() {
			// Given
			router.Get("/reports/hours", func(w http.ResponseWriter, r *http.Request) {
				gomega.Expect(r.URL.Query().Get("month")).To(gomega.Equal("2"))
				gomega.Expect(r.URL.Query().Get("year")).To(gomega.Equal("2026"))
				json.NewEncoder(w).Encode(map[string]any{
					"data": datamodel.HoursReport{Month: 2, Year: 2026, TotalHours: 152.5},
				})
			})

			// When
			err := service.FetchHours(context.Background(), HoursQueryDTO{Month: 2, Year: 2026})

			// Then
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(store.AnalyticsState().Hours.Data.TotalHours).To(gomega.Equal(152.5))
		})

		ginkgo.It("should reject an out-of-range month before dispatching", func() {
			// When
			err := service.FetchHours(context.Background(), HoursQueryDTO{Month: 0, Year: 2026})

			// Then
			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.Code).To(gomega.Equal(internal.ErrCodeValidationFailed))
			gomega.Expect(store.AnalyticsState().Hours.Status).To(gomega.Equal(request.StatusIdle))
		})
	})
})
