package salary

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"

	"github.com/go-chi/chi"
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/frahmantamala/employee-portal/internal"
	"github.com/frahmantamala/employee-portal/internal/api"
	"github.com/frahmantamala/employee-portal/internal/core/datamodel"
	"github.com/frahmantamala/employee-portal/internal/core/request"
	"github.com/frahmantamala/employee-portal/pkg/logger"
)

func TestSalary(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Salary Module Suite")
}

type memStore struct {
	mu    sync.Mutex
	state State
}

func (m *memStore) UpdateSalary(fn func(*State)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	fn(&m.state)
}

func (m *memStore) SalaryState() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *memStore) Token() string { return "test-token" }

type stubSessions struct {
	err error
}

func (s stubSessions) EnsureSession() error { return s.err }

var _ = ginkgo.Describe("SalaryService", func() {
	var (
		server  *httptest.Server
		router  *chi.Mux
		store   *memStore
		service *Service
		docsDir string
	)

	ginkgo.BeforeEach(func() {
		router = chi.NewRouter()
		server = httptest.NewServer(router)
		store = &memStore{}
		docsDir = ginkgo.GinkgoT().TempDir()

		client := api.NewClient(api.Config{BaseURL: server.URL}, store)
		service = NewService(client, store, request.NewTracker(), stubSessions{}, FileWriter{Dir: docsDir}, logger.L())
	})

	ginkgo.AfterEach(func() {
		server.Close()
	})

	ginkgo.Describe("FetchAnnualPackage", func() {
		ginkgo.Context("when earlier years have data", func() {
			ginkgo.It("should fall back through 404 years and keep the found year", func() {
				// Given 2026 and 2025 have no data, 2024 does
				router.Get("/salary/annual-package", func(w http.ResponseWriter, r *http.Request) {
					switch r.URL.Query().Get("year") {
					case "2024":
						w.Write([]byte(`{"data":{"employee_id":7,"gross_annual":1200,"net_annual":1000,"currency":"EUR"}}`))
					default:
						w.WriteHeader(http.StatusNotFound)
						w.Write([]byte(`{"message":"no package for year"}`))
					}
				})

				// When
				err := service.FetchAnnualPackage(context.Background(), 2026, 4)

				// Then
				gomega.Expect(err).ToNot(gomega.HaveOccurred())

				pkg := store.SalaryState().Package
				gomega.Expect(pkg.Fulfilled()).To(gomega.BeTrue())
				gomega.Expect(pkg.Err).To(gomega.BeEmpty())
				gomega.Expect(pkg.Data.Year).To(gomega.Equal(2024))
				gomega.Expect(pkg.Data.GrossAnnual).To(gomega.Equal(int64(1200)))
			})
		})

		ginkgo.Context("when the first year returns 401", func() {
			ginkgo.It("should abort immediately without trying earlier years", func() {
				// Given
				var years []string
				router.Get("/salary/annual-package", func(w http.ResponseWriter, r *http.Request) {
					years = append(years, r.URL.Query().Get("year"))
					w.WriteHeader(http.StatusUnauthorized)
				})

				// When
				err := service.FetchAnnualPackage(context.Background(), 2026, 4)

				// Then
				gomega.Expect(err).To(gomega.HaveOccurred())
				appErr, ok := internal.IsAppError(err)
				gomega.Expect(ok).To(gomega.BeTrue())
				gomega.Expect(appErr.Code).To(gomega.Equal(internal.ErrCodeAuthFailed))
				gomega.Expect(years).To(gomega.Equal([]string{"2026"}), "no further years may be attempted")
				gomega.Expect(store.SalaryState().Package.Rejected()).To(gomega.BeTrue())
			})
		})

		ginkgo.Context("when a 500 interrupts the loop", func() {
			ginkgo.It("should abort at the failing year", func() {
				// Given 2026 has no data, 2025 is broken
				var years []string
				router.Get("/salary/annual-package", func(w http.ResponseWriter, r *http.Request) {
					year := r.URL.Query().Get("year")
					years = append(years, year)
					if year == "2026" {
						w.WriteHeader(http.StatusNotFound)
						return
					}
					w.WriteHeader(http.StatusInternalServerError)
				})

				// When
				err := service.FetchAnnualPackage(context.Background(), 2026, 4)

				// Then
				gomega.Expect(err).To(gomega.HaveOccurred())
				gomega.Expect(years).To(gomega.Equal([]string{"2026", "2025"}))
			})
		})

		ginkgo.Context("when no year has data", func() {
			ginkgo.It("should reject with a no-data failure", func() {
				// Given
				router.Get("/salary/annual-package", func(w http.ResponseWriter, r *http.Request) {
					w.WriteHeader(http.StatusNotFound)
				})

				// When
				err := service.FetchAnnualPackage(context.Background(), 2026, 3)

				// Then
				appErr, ok := internal.IsAppError(err)
				gomega.Expect(ok).To(gomega.BeTrue())
				gomega.Expect(appErr.Code).To(gomega.Equal(internal.ErrCodeNoData))
				gomega.Expect(store.SalaryState().Package.Rejected()).To(gomega.BeTrue())
			})
		})

		ginkgo.Context("when there is no session", func() {
			ginkgo.It("should reject before any request", func() {
				// Given
				client := api.NewClient(api.Config{BaseURL: server.URL}, store)
				service = NewService(client, store, request.NewTracker(), stubSessions{err: internal.ErrNotAuthenticated}, FileWriter{Dir: docsDir}, logger.L())

				// When
				err := service.FetchAnnualPackage(context.Background(), 2026, 4)

				// Then
				gomega.Expect(err).To(gomega.Equal(internal.ErrNotAuthenticated))
			})
		})
	})

	ginkgo.Describe("FetchSlip", func() {
		ginkgo.It("should load the slip for the requested month", func() {
			// Given
			router.Get("/salary/slip", func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"data":{"employee_id":7,"employee_name":"Dewi","month":3,"year":2026,"basic_pay":900,"net_pay":850,"currency":"EUR"}}`))
			})

			// When
			err := service.FetchSlip(context.Background(), SlipQueryDTO{Month: 3, Year: 2026})

			// Then
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			slip := store.SalaryState().Slip
			gomega.Expect(slip.Fulfilled()).To(gomega.BeTrue())
			gomega.Expect(slip.Data.NetPay).To(gomega.Equal(int64(850)))
		})

		ginkgo.It("should treat a 404 as a no-data failure for that period", func() {
			// Given
			router.Get("/salary/slip", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			})

			// When
			err := service.FetchSlip(context.Background(), SlipQueryDTO{Month: 1, Year: 2020})

			// Then
			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.Code).To(gomega.Equal(internal.ErrCodeNoData))
		})

		ginkgo.It("should reject an out-of-range month before dispatching", func() {
			// When
			err := service.FetchSlip(context.Background(), SlipQueryDTO{Month: 13, Year: 2026})

			// Then
			gomega.Expect(err).To(gomega.HaveOccurred())
			gomega.Expect(store.SalaryState().Slip.Status).To(gomega.Equal(request.StatusIdle))
		})
	})

	ginkgo.Describe("GenerateSlipDocument", func() {
		ginkgo.It("should render the loaded slip and record the artifact path", func() {
			// Given
			router.Get("/salary/slip", func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"data":{"employee_name":"Dewi","designation":"Engineer","month":3,"year":2026,"basic_pay":900,"net_pay":850,"currency":"EUR"}}`))
			})
			gomega.Expect(service.FetchSlip(context.Background(), SlipQueryDTO{Month: 3, Year: 2026})).To(gomega.Succeed())

			// When
			path, err := service.GenerateSlipDocument()

			// Then
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(path).ToNot(gomega.BeEmpty())
			gomega.Expect(store.SalaryState().SlipPath).To(gomega.Equal(path))

			content, err := os.ReadFile(path)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(string(content)).To(gomega.ContainSubstring("Dewi"))
			gomega.Expect(string(content)).To(gomega.ContainSubstring("850"))
		})

		ginkgo.It("should refuse to render before a slip is loaded", func() {
			// When
			_, err := service.GenerateSlipDocument()

			// Then
			gomega.Expect(err).To(gomega.HaveOccurred())
		})
	})

	ginkgo.Describe("Reset", func() {
		ginkgo.It("should restore the initial slice shape", func() {
			// Given
			router.Get("/salary/slip", func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"data":{"month":3,"year":2026,"net_pay":850}}`))
			})
			gomega.Expect(service.FetchSlip(context.Background(), SlipQueryDTO{Month: 3, Year: 2026})).To(gomega.Succeed())

			// When
			service.Reset()

			// Then
			st := store.SalaryState()
			gomega.Expect(st.Slip.Status).To(gomega.Equal(request.StatusIdle))
			gomega.Expect(st.Slip.Data).To(gomega.Equal(datamodel.SalarySlip{}))
			gomega.Expect(st.Package.Status).To(gomega.Equal(request.StatusIdle))
			gomega.Expect(st.SlipPath).To(gomega.BeEmpty())
			gomega.Expect(st.PackagePath).To(gomega.BeEmpty())
		})
	})
})
