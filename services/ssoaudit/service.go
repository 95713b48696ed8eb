package ssoaudit

import (
	"context"
	"fmt"
	"time"

	"github.com/evefleet/ssobackend/lib/myerrors"
	"github.com/evefleet/ssobackend/lib/mylog"
	"github.com/evefleet/ssobackend/lib/mypubsub"
	"github.com/evefleet/ssobackend/lib/mystore"
	"github.com/evefleet/ssobackend/lib/mytime"
)

// CharacterActivity aggregates the login history of a single character.
type CharacterActivity struct {
	UID            string
	CharacterID    int64
	CharacterName  string
	LoginCount     int
	LastLogin      time.Time
	LastSessionUID string
}

type service struct {
	activityStore mystore.Store[CharacterActivity]
	subscriber    mypubsub.PubSub
	nower         mytime.Nower
	logger        mylog.Logger
}

func newService(activityStore mystore.Store[CharacterActivity], subscriber mypubsub.PubSub, nower mytime.Nower) *service {
	return &service{
		activityStore: activityStore,
		subscriber:    subscriber,
		nower:         nower,
		logger:        mylog.New("ssoaudit"),
	}
}

func (s *service) getActivity(c context.Context) ([]CharacterActivity, error) {
	activities, err := s.activityStore.List(c)
	if err != nil {
		return nil, myerrors.NewInternalError(fmt.Errorf("error fetching character activity: %s", err))
	}

	return activities, nil
}
