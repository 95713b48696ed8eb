package warmup

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/evefleet/ssobackend/lib/mycontext"
	"github.com/evefleet/ssobackend/lib/myhttp"
	"github.com/evefleet/ssobackend/lib/mylog"
	"github.com/evefleet/ssobackend/lib/mystore"
	"github.com/evefleet/ssobackend/services/sso"
)

type webService struct {
	logger       mylog.Logger
	sessionStore mystore.Store[sso.LoginSession]
}

// Use dependency injection to isolate the infrastructure and ease testing
func NewService(sessionStore mystore.Store[sso.LoginSession]) *webService {
	return &webService{
		logger:       mylog.New("warmup"),
		sessionStore: sessionStore,
	}
}

func (s webService) RegisterEndpoints(c context.Context, router *mux.Router) {
	router.HandleFunc("/_ah/warmup", s.warmupPage()).Methods("GET")
}

// warmupPage touches the session store so a fresh instance has its datastore
// connection established before the first real request arrives.
func (s *webService) warmupPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		_, _, err := s.sessionStore.Get(c, "warmup")
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, myhttp.SuccessResponse{
			Message: "Successfully warmed up",
		})
	}
}
