package sso

import (
	"context"
	"fmt"

	"github.com/evefleet/ssobackend/lib/myerrors"
	"github.com/evefleet/ssobackend/lib/mylog"
	"github.com/evefleet/ssobackend/lib/mypublisher"
	"github.com/evefleet/ssobackend/lib/mystore"
	"github.com/evefleet/ssobackend/lib/mytime"
	"github.com/evefleet/ssobackend/lib/myuuid"
	"github.com/evefleet/ssobackend/services/sso/identity"
	"github.com/evefleet/ssobackend/services/sso/ssoclient"
	"github.com/evefleet/ssobackend/services/sso/ssoconfig"
	"github.com/evefleet/ssobackend/services/sso/ssoevents"
)

type service struct {
	cfg          ssoconfig.Config
	sessionStore mystore.Store[LoginSession]
	nower        mytime.Nower
	uuider       myuuid.UUIDer
	logger       mylog.Logger
	ssoClient    ssoclient.SSOClient
	resolver     identity.Resolver
	publisher    mypublisher.Publisher
}

func newService(cfg ssoconfig.Config, sessionStore mystore.Store[LoginSession], nower mytime.Nower, uuider myuuid.UUIDer, ssoClient ssoclient.SSOClient, resolver identity.Resolver, pub mypublisher.Publisher) *service {
	return &service{
		cfg:          cfg,
		sessionStore: sessionStore,
		nower:        nower,
		uuider:       uuider,
		logger:       mylog.New("sso"),
		ssoClient:    ssoClient,
		resolver:     resolver,
		publisher:    pub,
	}
}

func (s *service) CreateTopics(c context.Context) error {
	err := s.publisher.CreateTopic(c, ssoevents.TopicName)
	if err != nil {
		return fmt.Errorf("error creating topic %s: %s", ssoevents.TopicName, err)
	}

	return nil
}

func (s *service) start(c context.Context, requestedScopes string, callerState string, returnURL string, currentHostname string) (string, error) {
	now := s.nower.Now()
	sessionUID := s.uuider.Create()

	s.logger.Log(c, sessionUID, mylog.SeverityInfo, "Start login session %s", sessionUID)

	if requestedScopes == "" {
		requestedScopes = s.cfg.DefaultScope
	}

	authURL, err := s.ssoClient.ComposeAuthURL(c, ssoclient.ComposeAuthURLRequest{
		CompletionURL: createCompletionURL(currentHostname), // Be called back here when authorisation has completed
		Scope:         requestedScopes,
		State:         sessionUID,
	})
	if err != nil {
		return "", myerrors.NewInternalError(fmt.Errorf("error composing auth url: %s", err))
	}

	err = s.sessionStore.RunInTransaction(c, func(c context.Context) error {
		// must be idempotent

		err := s.sessionStore.Put(c, sessionUID, LoginSession{
			UID:          sessionUID,
			ClientID:     s.cfg.ClientID,
			Scopes:       requestedScopes,
			ReturnURL:    returnURL,
			CallerState:  callerState,
			CreatedAt:    now,
			LastModified: &now,
		})
		if err != nil {
			return myerrors.NewInternalError(fmt.Errorf("error storing session: %s", err))
		}

		err = s.publisher.Publish(c, ssoevents.TopicName, ssoevents.LoginStarted{
			ClientID:   s.cfg.ClientID,
			SessionUID: sessionUID,
			Scopes:     requestedScopes,
		})
		if err != nil {
			return myerrors.NewInternalError(fmt.Errorf("error publishing event: %s", err))
		}

		return nil
	})
	if err != nil {
		return "", err
	}

	s.logger.Log(c, sessionUID, mylog.SeverityInfo, "Composed auth url for login session %s", sessionUID)

	return authURL, nil
}

type CallbackRequest struct {
	State            string `form:"state"`
	Code             string `form:"code"`
	Error            string `form:"error"`
	ErrorDescription string `form:"error_description"`
}

type CallbackOutcome struct {
	SessionUID  string
	ReturnURL   string
	CallerState string
	Result      *AuthResult
	Failures    []Failure
}

func (s *service) callback(c context.Context, req CallbackRequest, currentHostname string) (CallbackOutcome, error) {
	now := s.nower.Now()
	sessionUID := req.State

	s.logger.Log(c, sessionUID, mylog.SeverityInfo, "Continue login session %s on callback", sessionUID)

	outcome := CallbackOutcome{}
	err := s.sessionStore.RunInTransaction(c, func(c context.Context) error {
		// must be idempotent

		session, exists, err := s.sessionStore.Get(c, sessionUID)
		if err != nil {
			return myerrors.NewInternalError(fmt.Errorf("error fetching session: %s", err))
		}
		if !exists {
			return myerrors.NewNotFoundError(fmt.Errorf("session with uid %s not found", sessionUID))
		}
		outcome.SessionUID = session.UID
		outcome.ReturnURL = session.ReturnURL
		outcome.CallerState = session.CallerState

		result, failures := s.processCallback(c, req, session, currentHostname)
		outcome.Result = result
		outcome.Failures = failures

		session.Done = true
		session.LastModified = &now
		if result != nil {
			session.Succeeded = true
			session.CharacterID = result.Info.CharacterID
			session.CharacterName = result.Info.Name
		} else {
			session.FailureKind = failures[0].Kind
			session.FailureMessage = failures[0].Message
		}
		err = s.sessionStore.Put(c, sessionUID, session)
		if err != nil {
			return myerrors.NewInternalError(fmt.Errorf("error storing session: %s", err))
		}

		if result != nil {
			err = s.publisher.Publish(c, ssoevents.TopicName, ssoevents.LoginCompleted{
				ClientID:      session.ClientID,
				SessionUID:    sessionUID,
				CharacterID:   result.Info.CharacterID,
				CharacterName: result.Info.Name,
			})
		} else {
			err = s.publisher.Publish(c, ssoevents.TopicName, ssoevents.LoginFailed{
				ClientID:       session.ClientID,
				SessionUID:     sessionUID,
				FailureKind:    failures[0].Kind,
				FailureMessage: failures[0].Message,
			})
		}
		if err != nil {
			return myerrors.NewInternalError(fmt.Errorf("error publishing event: %s", err))
		}

		return nil
	})
	if err != nil {
		return CallbackOutcome{}, err
	}

	s.logger.Log(c, sessionUID, mylog.SeverityInfo, "Completed login session %s (success=%t)", sessionUID, outcome.Result != nil)

	return outcome, nil
}

// processCallback walks the callback through provider-error detection, the
// code-for-token exchange and identity resolution. It returns either a result
// or a non-empty list of tagged failures, never both.
func (s *service) processCallback(c context.Context, req CallbackRequest, session LoginSession, currentHostname string) (*AuthResult, []Failure) {
	if req.Error != "" {
		return nil, []Failure{{Kind: req.Error, Message: req.ErrorDescription}}
	}
	if req.Code == "" {
		return nil, []Failure{{Kind: failureKindMissingCode, Message: "callback carried no authorization code"}}
	}

	tokenResp, err := s.ssoClient.GetAccessToken(c, ssoclient.GetTokenRequest{
		RedirectURI: createCompletionURL(currentHostname),
		Code:        req.Code,
	})
	if err != nil {
		return nil, []Failure{{Kind: failureKindToken, Message: err.Error()}}
	}
	// some token errors come back as a well-formed 200 response
	if embeddedError, found := tokenResp.Extra["error"]; found && tokenResp.AccessToken == "" {
		return nil, []Failure{{Kind: embeddedError, Message: tokenResp.Extra["error_description"]}}
	}

	ident, err := s.resolver.Resolve(c, tokenResp.AccessToken)
	if err != nil {
		s.logger.Log(c, session.UID, mylog.SeverityWarn, "Identity resolution failed (%s): %s", identity.KindOf(err), err)
		return nil, []Failure{{Kind: failureKindVerify, Message: err.Error()}}
	}

	result := buildAuthResult(s.cfg.UIDField, s.nower.Now(), tokenResp, ident)
	return &result, nil
}

func (s *service) getLoginStatus(c context.Context) ([]LoginStatus, error) {

	s.logger.Log(c, "", mylog.SeverityInfo, "Get login status")

	sessions, err := s.sessionStore.List(c)
	if err != nil {
		return nil, myerrors.NewInternalError(err)
	}

	statuses := []LoginStatus{}
	for _, session := range sessions {
		statuses = append(statuses, LoginStatus{
			SessionUID:    session.UID,
			CreatedAt:     session.CreatedAt,
			LastModified:  session.LastModified,
			Done:          session.Done,
			Succeeded:     session.Succeeded,
			CharacterName: session.CharacterName,
			FailureKind:   session.FailureKind,
		})
	}

	return statuses, nil
}

func createCompletionURL(hostname string) string {
	return fmt.Sprintf("%s/sso/callback", hostname)
}
