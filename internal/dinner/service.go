package dinner

import (
	"context"
	"log/slog"
	"time"

	"github.com/frahmantamala/employee-portal/internal"
	"github.com/frahmantamala/employee-portal/internal/api"
	"github.com/frahmantamala/employee-portal/internal/core/datamodel"
	"github.com/frahmantamala/employee-portal/internal/core/request"
)

const (
	opMenu = "dinner.menu"
	opSave = "dinner.save"
)

type menuResponse struct {
	Data datamodel.DinnerMenu `json:"data"`
}

type saveResponse struct {
	Message string `json:"message"`
}

type Service struct {
	api      *api.Client
	store    Store
	tracker  *request.Tracker
	sessions Sessions
	logger   *slog.Logger
	now      func() time.Time
}

func NewService(apiClient *api.Client, store Store, tracker *request.Tracker, sessions Sessions, logger *slog.Logger) *Service {
	return &Service{
		api:      apiClient,
		store:    store,
		tracker:  tracker,
		sessions: sessions,
		logger:   logger,
		now:      time.Now,
	}
}

// FetchMenu loads today's menu and aligns the local selection deadline
// with it.
func (s *Service) FetchMenu(ctx context.Context) error {
	if err := s.sessions.EnsureSession(); err != nil {
		return err
	}

	seq := s.tracker.Begin(opMenu)
	s.store.UpdateDinner(func(st *State) { st.Menu.Begin() })

	var resp menuResponse
	if err := s.api.Get(ctx, "/dinner/menu/today", nil, &resp); err != nil {
		appErr := internal.Normalize(err, "could not load today's menu")
		if s.tracker.Latest(opMenu, seq) {
			s.store.UpdateDinner(func(st *State) { st.Menu.FailKeep(appErr.Message) })
		}
		return appErr
	}

	if s.tracker.Latest(opMenu, seq) {
		menu := resp.Data
		s.store.UpdateDinner(func(st *State) {
			st.Menu.Resolve(menu)
			st.Selection.Deadline = menu.Deadline
		})
	}
	return nil
}

// Toggle flips the given meal side on or off. Veg and non-veg are
// mutually exclusive: turning one on turns the other off, and toggling
// the selected side again clears it. Pure store action, no network.
func (s *Service) Toggle(meal string) error {
	st := s.store.DinnerState()

	menu := st.Menu.Data
	if st.Menu.Fulfilled() {
		switch {
		case meal == datamodel.MealTypeVeg && menu.MealType == datamodel.MealTypeNonVeg:
			return internal.NewValidationError("veg is not offered today", internal.ErrCodeValidationFailed)
		case meal == datamodel.MealTypeNonVeg && menu.MealType == datamodel.MealTypeVeg:
			return internal.NewValidationError("non-veg is not offered today", internal.ErrCodeValidationFailed)
		}
	}

	if !st.Selection.Deadline.IsZero() && s.now().After(st.Selection.Deadline) {
		return internal.NewValidationError("selection deadline has passed", internal.ErrCodeDeadlinePassed)
	}

	switch meal {
	case datamodel.MealTypeVeg:
		s.store.UpdateDinner(func(st *State) {
			if st.Selection.Veg {
				st.Selection.Veg = false
			} else {
				st.Selection.Veg = true
				st.Selection.NonVeg = false
			}
		})
	case datamodel.MealTypeNonVeg:
		s.store.UpdateDinner(func(st *State) {
			if st.Selection.NonVeg {
				st.Selection.NonVeg = false
			} else {
				st.Selection.NonVeg = true
				st.Selection.Veg = false
			}
		})
	default:
		return internal.NewValidationError("meal must be veg or non_veg", internal.ErrCodeValidationFailed)
	}

	return nil
}

// SelectItem records the chosen food item locally.
func (s *Service) SelectItem(foodItemID int64) {
	s.store.UpdateDinner(func(st *State) { st.Selection.FoodItemID = foodItemID })
}

// StoreSelection submits the current selection to the portal.
func (s *Service) StoreSelection(ctx context.Context) error {
	if err := s.sessions.EnsureSession(); err != nil {
		return err
	}

	st := s.store.DinnerState()
	if !st.Selection.Deadline.IsZero() && s.now().After(st.Selection.Deadline) {
		return internal.NewValidationError("selection deadline has passed", internal.ErrCodeDeadlinePassed)
	}

	seq := s.tracker.Begin(opSave)
	s.store.UpdateDinner(func(st *State) { st.Save.Begin() })

	var resp saveResponse
	if err := s.api.Post(ctx, "/dinner/selection", st.Selection, &resp); err != nil {
		appErr := internal.Normalize(err, "could not save dinner selection")
		if s.tracker.Latest(opSave, seq) {
			s.store.UpdateDinner(func(st *State) { st.Save.Fail(appErr.Message) })
		}
		return appErr
	}

	if s.tracker.Latest(opSave, seq) {
		s.store.UpdateDinner(func(st *State) { st.Save.Resolve(struct{}{}) })
	}

	s.logger.Info("dinner selection stored",
		"veg", st.Selection.Veg,
		"non_veg", st.Selection.NonVeg,
		"food_item_id", st.Selection.FoodItemID)
	return nil
}

// ResetSave clears the save operation state.
func (s *Service) ResetSave() {
	s.store.UpdateDinner(func(st *State) { st.Save.Reset() })
}
