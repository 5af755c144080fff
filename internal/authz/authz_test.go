package authz

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

var scheduleKinds = []Kind{KindTrainType, KindTrain, KindStation, KindRoute, KindCrew, KindTrip}

var writeActions = []Action{ActionCreate, ActionUpdate, ActionDelete}

func newAuthorizer(t *testing.T) *Authorizer {
	t.Helper()
	a, err := New(context.Background())
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return a
}

func assertDecision(t *testing.T, a *Authorizer, p Principal, action Action, kind Kind, want bool) {
	t.Helper()
	got, err := a.Allow(context.Background(), p, action, kind)
	if err != nil {
		t.Fatalf("Allow(%s, %s) failed: %v", action, kind, err)
	}
	if got != want {
		t.Errorf("Allow(%+v, %s, %s) = %v, want %v", p, action, kind, got, want)
	}
}

func TestAnonymousIsAlwaysDenied(t *testing.T) {
	a := newAuthorizer(t)
	kinds := append([]Kind{KindOrder}, scheduleKinds...)
	actions := append([]Action{ActionList, ActionRetrieve, ActionUploadImage}, writeActions...)

	for _, kind := range kinds {
		for _, action := range actions {
			assertDecision(t, a, Anonymous(), action, kind, false)
		}
	}
}

func TestUserReadsScheduleButCannotWrite(t *testing.T) {
	a := newAuthorizer(t)
	user := Principal{UserID: uuid.New(), Authenticated: true}

	for _, kind := range scheduleKinds {
		assertDecision(t, a, user, ActionList, kind, true)
		assertDecision(t, a, user, ActionRetrieve, kind, true)
		for _, action := range writeActions {
			assertDecision(t, a, user, action, kind, false)
		}
	}
	assertDecision(t, a, user, ActionUploadImage, KindTrain, false)
}

func TestAdminManagesSchedule(t *testing.T) {
	a := newAuthorizer(t)
	admin := Principal{UserID: uuid.New(), Authenticated: true, Admin: true}

	for _, kind := range scheduleKinds {
		for _, action := range append([]Action{ActionList, ActionRetrieve}, writeActions...) {
			assertDecision(t, a, admin, action, kind, true)
		}
	}
	assertDecision(t, a, admin, ActionUploadImage, KindTrain, true)
}

func TestImageUploadIsTrainOnly(t *testing.T) {
	a := newAuthorizer(t)
	admin := Principal{UserID: uuid.New(), Authenticated: true, Admin: true}

	for _, kind := range append([]Kind{KindOrder}, scheduleKinds...) {
		assertDecision(t, a, admin, ActionUploadImage, kind, kind == KindTrain)
	}
	assertDecision(t, a, admin, Action("archive"), KindTrain, false)
}

func TestOrdersCannotBeUpdated(t *testing.T) {
	a := newAuthorizer(t)
	principals := []Principal{
		{UserID: uuid.New(), Authenticated: true},
		{UserID: uuid.New(), Authenticated: true, Admin: true},
	}

	for _, p := range principals {
		assertDecision(t, a, p, ActionList, KindOrder, true)
		assertDecision(t, a, p, ActionRetrieve, KindOrder, true)
		assertDecision(t, a, p, ActionCreate, KindOrder, true)
		assertDecision(t, a, p, ActionUpdate, KindOrder, false)
		assertDecision(t, a, p, ActionDelete, KindOrder, true)
		assertDecision(t, a, p, ActionUploadImage, KindOrder, false)
	}
}

func TestAdminFlagWithoutAuthenticationIsDenied(t *testing.T) {
	a := newAuthorizer(t)
	assertDecision(t, a, Principal{Admin: true}, ActionCreate, KindTrain, false)
}
