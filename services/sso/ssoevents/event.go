package ssoevents

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/evefleet/ssobackend/lib/myerrors"
	"github.com/evefleet/ssobackend/lib/mypublisher"
)

const (
	TopicName             = "sso"
	ssoLoginStartedName   = TopicName + ".login.started"
	ssoLoginCompletedName = TopicName + ".login.completed"
	ssoLoginFailedName    = TopicName + ".login.failed"
)

type SSOEventService interface {
	Subscribe(c context.Context) error
	OnLoginStarted(c context.Context, topic string, event LoginStarted) error
	OnLoginCompleted(c context.Context, topic string, event LoginCompleted) error
	OnLoginFailed(c context.Context, topic string, event LoginFailed) error
}

func DispatchEvent(c context.Context, reader io.Reader, service SSOEventService) error {
	envelope, err := mypublisher.ParseEventEnvelope(reader)
	if err != nil {
		return myerrors.NewInvalidInputError(err)
	}

	switch envelope.EventTypeName {
	case ssoLoginStartedName:
		{
			event := LoginStarted{}
			err := json.Unmarshal([]byte(envelope.EventPayload), &event)
			if err != nil {
				return myerrors.NewInvalidInputError(err)
			}
			return service.OnLoginStarted(c, envelope.Topic, event)
		}
	case ssoLoginCompletedName:
		{
			event := LoginCompleted{}
			err := json.Unmarshal([]byte(envelope.EventPayload), &event)
			if err != nil {
				return myerrors.NewInvalidInputError(err)
			}
			return service.OnLoginCompleted(c, envelope.Topic, event)
		}
	case ssoLoginFailedName:
		{
			event := LoginFailed{}
			err := json.Unmarshal([]byte(envelope.EventPayload), &event)
			if err != nil {
				return myerrors.NewInvalidInputError(err)
			}
			return service.OnLoginFailed(c, envelope.Topic, event)
		}
	default:
		return myerrors.NewNotImplementedError(fmt.Errorf("%s", envelope.EventTypeName))
	}
}

type LoginStarted struct {
	ClientID   string
	SessionUID string
	Scopes     string
}

func (e LoginStarted) GetEventTypeName() string {
	return ssoLoginStartedName
}

func (e LoginStarted) GetAggregateName() string {
	return e.SessionUID
}

type LoginCompleted struct {
	ClientID      string
	SessionUID    string
	CharacterID   int64
	CharacterName string
}

func (e LoginCompleted) GetEventTypeName() string {
	return ssoLoginCompletedName
}

func (e LoginCompleted) GetAggregateName() string {
	return e.SessionUID
}

type LoginFailed struct {
	ClientID       string
	SessionUID     string
	FailureKind    string
	FailureMessage string
}

func (e LoginFailed) GetEventTypeName() string {
	return ssoLoginFailedName
}

func (e LoginFailed) GetAggregateName() string {
	return e.SessionUID
}
