package ssoaudit

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/evefleet/ssobackend/lib/mycontext"
	"github.com/evefleet/ssobackend/lib/myhttp"
	"github.com/evefleet/ssobackend/lib/mylog"
	"github.com/evefleet/ssobackend/lib/mypubsub"
	"github.com/evefleet/ssobackend/lib/mystore"
	"github.com/evefleet/ssobackend/lib/mytime"
	"github.com/evefleet/ssobackend/services/sso/ssoevents"
)

type webService struct {
	service *service
	logger  mylog.Logger
}

// Use dependency injection to isolate the infrastructure and ease testing
func NewService(activityStore mystore.Store[CharacterActivity], subscriber mypubsub.PubSub, nower mytime.Nower) *webService {
	return &webService{
		service: newService(activityStore, subscriber, nower),
		logger:  mylog.New("ssoaudit"),
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) error {
	router.HandleFunc("/ssoaudit/activity", s.activityPage()).Methods("GET")
	router.HandleFunc("/ssoaudit/event", s.handleEventEnvelope()).Methods("POST")

	err := s.service.Subscribe(c)
	if err != nil {
		return err
	}

	return nil
}

func (s *webService) handleEventEnvelope() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		err := ssoevents.DispatchEvent(c, r.Body, s.service)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, myhttp.SuccessResponse{
			Message: "Successfully processed event",
		})
	}
}

func (s *webService) activityPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		activities, err := s.service.getActivity(c)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, activities)
	}
}
