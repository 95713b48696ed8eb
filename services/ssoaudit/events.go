package ssoaudit

import (
	"context"
	"fmt"
	"strconv"

	"github.com/evefleet/ssobackend/lib/myerrors"
	"github.com/evefleet/ssobackend/lib/myhttp"
	"github.com/evefleet/ssobackend/lib/mylog"
	"github.com/evefleet/ssobackend/services/sso/ssoevents"
)

func (s *service) Subscribe(c context.Context) error {
	err := s.subscriber.CreateTopic(c, ssoevents.TopicName)
	if err != nil {
		return fmt.Errorf("error creating topic %s: %s", ssoevents.TopicName, err)
	}

	err = s.subscriber.Subscribe(c, ssoevents.TopicName, myhttp.GuessHostnameWithScheme()+"/ssoaudit/event")
	if err != nil {
		return fmt.Errorf("error subscribing to topic %s: %s", ssoevents.TopicName, err)
	}

	return nil
}

func (s *service) OnLoginStarted(c context.Context, topic string, event ssoevents.LoginStarted) error {
	return nil
}

// OnLoginCompleted bumps the login counter of the character. The event can be
// delivered more than once, the session uid guards against double counting.
func (s *service) OnLoginCompleted(c context.Context, topic string, event ssoevents.LoginCompleted) error {
	s.logger.Log(c, event.SessionUID, mylog.SeverityInfo, "Character %s (%d) completed login", event.CharacterName, event.CharacterID)

	uid := strconv.FormatInt(event.CharacterID, 10)
	return s.activityStore.RunInTransaction(c, func(c context.Context) error {
		activity, found, err := s.activityStore.Get(c, uid)
		if err != nil {
			return myerrors.NewInternalError(fmt.Errorf("error fetching activity of character %s: %s", uid, err))
		}
		if found && activity.LastSessionUID == event.SessionUID {
			return nil
		}
		if !found {
			activity = CharacterActivity{
				UID:         uid,
				CharacterID: event.CharacterID,
			}
		}

		activity.CharacterName = event.CharacterName
		activity.LoginCount++
		activity.LastLogin = s.nower.Now()
		activity.LastSessionUID = event.SessionUID

		err = s.activityStore.Put(c, uid, activity)
		if err != nil {
			return myerrors.NewInternalError(fmt.Errorf("error storing activity of character %s: %s", uid, err))
		}

		return nil
	})
}

func (s *service) OnLoginFailed(c context.Context, topic string, event ssoevents.LoginFailed) error {
	s.logger.Log(c, event.SessionUID, mylog.SeverityWarn, "Login session %s failed: %s (%s)",
		event.SessionUID, event.FailureKind, event.FailureMessage)
	return nil
}
