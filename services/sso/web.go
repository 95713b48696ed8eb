package sso

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/go-playground/form/v4"
	"github.com/gorilla/mux"

	"github.com/evefleet/ssobackend/lib/mycontext"
	"github.com/evefleet/ssobackend/lib/myerrors"
	"github.com/evefleet/ssobackend/lib/myhttp"
	"github.com/evefleet/ssobackend/lib/mylog"
	"github.com/evefleet/ssobackend/lib/mypublisher"
	"github.com/evefleet/ssobackend/lib/mystore"
	"github.com/evefleet/ssobackend/lib/mytime"
	"github.com/evefleet/ssobackend/lib/myuuid"
	"github.com/evefleet/ssobackend/services/sso/identity"
	"github.com/evefleet/ssobackend/services/sso/ssoclient"
	"github.com/evefleet/ssobackend/services/sso/ssoconfig"
)

type webService struct {
	service *service
	logger  mylog.Logger
	decoder *form.Decoder
}

func NewService(cfg ssoconfig.Config, sessionStore mystore.Store[LoginSession], nower mytime.Nower, uuider myuuid.UUIDer, ssoClient ssoclient.SSOClient, resolver identity.Resolver, pub mypublisher.Publisher) *webService {
	return &webService{
		service: newService(cfg, sessionStore, nower, uuider, ssoClient, resolver, pub),
		logger:  mylog.New("sso"),
		decoder: form.NewDecoder(),
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) error {
	router.HandleFunc("/sso/start", s.startPage()).Methods("GET")
	router.HandleFunc("/sso/callback", s.callbackPage()).Methods("GET")
	router.HandleFunc("/sso/status", s.statusPage()).Methods("GET")

	err := s.service.CreateTopics(context.Background())
	if err != nil {
		return err
	}

	return nil
}

type startPageRequest struct {
	Scopes    string `form:"scopes"`
	State     string `form:"state"`
	ReturnURL string `form:"returnURL"`
}

var errMissingState = errors.New("missing state")

// LoginFailedResponse lists why a callback did not produce a login.
type LoginFailedResponse struct {
	SessionUID string
	State      string `json:",omitempty"`
	Failures   []Failure
}

// LoginCompletedResponse hands the auth result back to a caller that did
// not ask for a redirect, together with the state it passed on /sso/start.
type LoginCompletedResponse struct {
	SessionUID string
	State      string `json:",omitempty"`
	Result     AuthResult
}

func (s *webService) startPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		req := startPageRequest{}
		err := s.decoder.Decode(&req, r.URL.Query())
		if err != nil {
			errorWriter.WriteError(c, w, 1, myerrors.NewInvalidInputError(err))
			return
		}

		authenticationURL, err := s.service.start(c, req.Scopes, req.State, req.ReturnURL, myhttp.HostnameWithScheme(r))
		if err != nil {
			errorWriter.WriteError(c, w, 2, err)
			return
		}

		http.Redirect(w, r, authenticationURL, http.StatusSeeOther)
	}
}

func (s *webService) callbackPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		req := CallbackRequest{}
		err := s.decoder.Decode(&req, r.URL.Query())
		if err != nil {
			errorWriter.WriteError(c, w, 1, myerrors.NewInvalidInputError(err))
			return
		}

		if req.State == "" {
			errorWriter.WriteError(c, w, 2, myerrors.NewInvalidInputError(errMissingState))
			return
		}

		outcome, err := s.service.callback(c, req, myhttp.HostnameWithScheme(r))
		if err != nil {
			errorWriter.WriteError(c, w, 3, err)
			return
		}

		if outcome.Result == nil {
			errorWriter.Write(c, w, http.StatusForbidden, LoginFailedResponse{
				SessionUID: outcome.SessionUID,
				State:      outcome.CallerState,
				Failures:   outcome.Failures,
			})
			return
		}

		if outcome.ReturnURL != "" {
			http.Redirect(w, r, composeReturnURL(outcome.ReturnURL, outcome.SessionUID, outcome.CallerState), http.StatusSeeOther)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, LoginCompletedResponse{
			SessionUID: outcome.SessionUID,
			State:      outcome.CallerState,
			Result:     *outcome.Result,
		})
	}
}

// composeReturnURL hands the session uid and the caller's own state back to
// the return url, so the caller can correlate the redirect with its request.
func composeReturnURL(returnURL string, sessionUID string, callerState string) string {
	parsed, err := url.Parse(returnURL)
	if err != nil {
		return returnURL
	}
	params := parsed.Query()
	params.Set("sessionUID", sessionUID)
	if callerState != "" {
		params.Set("state", callerState)
	}
	parsed.RawQuery = params.Encode()
	return parsed.String()
}

func (s *webService) statusPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		statuses, err := s.service.getLoginStatus(c)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, statuses)
	}
}
