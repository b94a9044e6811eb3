package dinner

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

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

func TestDinner(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Dinner Module Suite")
}

type memStore struct {
	mu    sync.Mutex
	state State
}

func (m *memStore) UpdateDinner(fn func(*State)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	fn(&m.state)
}

func (m *memStore) DinnerState() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *memStore) Token() string { return "test-token" }

type stubSessions struct {
	err error
}

func (s stubSessions) EnsureSession() error { return s.err }

var _ = ginkgo.Describe("DinnerService", func() {
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

	ginkgo.Describe("Toggle", func() {
		ginkgo.It("should clear non-veg when veg is selected", func() {
			// Given a non-veg selection already made
			gomega.Expect(service.Toggle(datamodel.MealTypeNonVeg)).To(gomega.Succeed())
			gomega.Expect(store.DinnerState().Selection.NonVeg).To(gomega.BeTrue())

			// When
			gomega.Expect(service.Toggle(datamodel.MealTypeVeg)).To(gomega.Succeed())

			// Then
			sel := store.DinnerState().Selection
			gomega.Expect(sel.Veg).To(gomega.BeTrue())
			gomega.Expect(sel.NonVeg).To(gomega.BeFalse())
		})

		ginkgo.It("should clear the side when toggled twice", func() {
			// When
			gomega.Expect(service.Toggle(datamodel.MealTypeVeg)).To(gomega.Succeed())
			gomega.Expect(service.Toggle(datamodel.MealTypeVeg)).To(gomega.Succeed())

			// Then
			sel := store.DinnerState().Selection
			gomega.Expect(sel.Veg).To(gomega.BeFalse())
			gomega.Expect(sel.NonVeg).To(gomega.BeFalse())
		})

		ginkgo.It("should reject an unknown meal side", func() {
			// When
			err := service.Toggle("fish")

			// Then
			gomega.Expect(err).To(gomega.HaveOccurred())
			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.Code).To(gomega.Equal(internal.ErrCodeValidationFailed))
		})

		ginkgo.Context("when the menu restricts the meal type", func() {
			ginkgo.It("should refuse the side the menu does not offer", func() {
				// Given a veg-only menu
				store.UpdateDinner(func(st *State) {
					st.Menu.Resolve(datamodel.DinnerMenu{MealType: datamodel.MealTypeVeg})
				})

				// When
				err := service.Toggle(datamodel.MealTypeNonVeg)

				// Then
				gomega.Expect(err).To(gomega.HaveOccurred())
				gomega.Expect(store.DinnerState().Selection.NonVeg).To(gomega.BeFalse())
			})

			ginkgo.It("should allow either side on a both day", func() {
				// Given
				store.UpdateDinner(func(st *State) {
					st.Menu.Resolve(datamodel.DinnerMenu{MealType: datamodel.MealTypeBoth})
				})

				// When / Then
				gomega.Expect(service.Toggle(datamodel.MealTypeVeg)).To(gomega.Succeed())
				gomega.Expect(service.Toggle(datamodel.MealTypeNonVeg)).To(gomega.Succeed())
				gomega.Expect(store.DinnerState().Selection.Veg).To(gomega.BeFalse())
				gomega.Expect(store.DinnerState().Selection.NonVeg).To(gomega.BeTrue())
			})
		})

		ginkgo.Context("when the deadline has passed", func() {
			ginkgo.It("should refuse to change the selection", func() {
				// Given
				service.now = func() time.Time { return time.Date(2026, 3, 2, 18, 0, 0, 0, time.UTC) }
				store.UpdateDinner(func(st *State) {
					st.Selection.Deadline = time.Date(2026, 3, 2, 15, 0, 0, 0, time.UTC)
				})

				// When
				err := service.Toggle(datamodel.MealTypeVeg)

				// Then
				appErr, ok := internal.IsAppError(err)
				gomega.Expect(ok).To(gomega.BeTrue())
				gomega.Expect(appErr.Code).To(gomega.Equal(internal.ErrCodeDeadlinePassed))
				gomega.Expect(store.DinnerState().Selection.Veg).To(gomega.BeFalse())
			})
		})
	})

	ginkgo.Describe("FetchMenu", func() {
		ginkgo.It("should load the menu and adopt its deadline", func() {
			// Given
			deadline := time.Date(2026, 3, 2, 15, 0, 0, 0, time.UTC)
			router.Get("/dinner/menu/today", func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(map[string]any{
					"data": datamodel.DinnerMenu{
						MealType: datamodel.MealTypeBoth,
						Items:    []datamodel.FoodItem{{ID: 4, Name: "Nasi Goreng", IsVeg: false}},
						Deadline: deadline,
					},
				})
			})

			// When
			err := service.FetchMenu(context.Background())

			// Then
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			st := store.DinnerState()
			gomega.Expect(st.Menu.Fulfilled()).To(gomega.BeTrue())
			gomega.Expect(st.Menu.Data.Items).To(gomega.HaveLen(1))
			gomega.Expect(st.Selection.Deadline.Equal(deadline)).To(gomega.BeTrue())
		})

		ginkgo.It("should keep the stale menu when the refresh fails", func() {
			// Given a previously loaded menu
			store.UpdateDinner(func(st *State) {
				st.Menu.Resolve(datamodel.DinnerMenu{MealType: datamodel.MealTypeVeg})
			})
			router.Get("/dinner/menu/today", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			})

			// When
			err := service.FetchMenu(context.Background())

			// Then
			gomega.Expect(err).To(gomega.HaveOccurred())
			st := store.DinnerState()
			gomega.Expect(st.Menu.Rejected()).To(gomega.BeTrue())
			gomega.Expect(st.Menu.Data.MealType).To(gomega.Equal(datamodel.MealTypeVeg))
		})
	})

	ginkgo.Describe("StoreSelection", func() {
		ginkgo.It("should submit the current selection", func() {
			// Given
			var got datamodel.DinnerSelection
			router.Post("/dinner/selection", func(w http.ResponseWriter, r *http.Request) {
				gomega.Expect(json.NewDecoder(r.Body).Decode(&got)).To(gomega.Succeed())
				w.Write([]byte(`{"message":"saved"}`))
			})
			gomega.Expect(service.Toggle(datamodel.MealTypeNonVeg)).To(gomega.Succeed())
			service.SelectItem(4)

			// When
			err := service.StoreSelection(context.Background())

			// Then
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(got.NonVeg).To(gomega.BeTrue())
			gomega.Expect(got.FoodItemID).To(gomega.Equal(int64(4)))
			gomega.Expect(store.DinnerState().Save.Fulfilled()).To(gomega.BeTrue())
		})

		ginkgo.It("should refuse to submit after the deadline", func() {
			// Given
			service.now = func() time.Time { return time.Date(2026, 3, 2, 18, 0, 0, 0, time.UTC) }
			store.UpdateDinner(func(st *State) {
				st.Selection.Deadline = time.Date(2026, 3, 2, 15, 0, 0, 0, time.UTC)
			})

			// When
			err := service.StoreSelection(context.Background())

			// Then
			gomega.Expect(err).To(gomega.HaveOccurred())
			gomega.Expect(store.DinnerState().Save.Status).To(gomega.Equal(request.StatusIdle))
		})

		ginkgo.It("should record the failure when the portal rejects the save", func() {
			// Given
			router.Post("/dinner/selection", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnprocessableEntity)
				w.Write([]byte(`{"message":"selection window closed"}`))
			})

			// When
			err := service.StoreSelection(context.Background())

			// Then
			gomega.Expect(err).To(gomega.HaveOccurred())
			st := store.DinnerState()
			gomega.Expect(st.Save.Rejected()).To(gomega.BeTrue())
			gomega.Expect(st.Save.Err).To(gomega.Equal("selection window closed"))
		})
	})

	ginkgo.Describe("ResetSave", func() {
		ginkgo.It("should return the save request to idle", func() {
			// Given
			store.UpdateDinner(func(st *State) { st.Save.Fail("boom") })

			// When
			service.ResetSave()

			// Then
			gomega.Expect(store.DinnerState().Save).To(gomega.Equal(request.Request[struct{}]{Status: request.StatusIdle}))
		})
	})
})
