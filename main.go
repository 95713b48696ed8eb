package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"github.com/evefleet/ssobackend/lib/mypublisher"
	"github.com/evefleet/ssobackend/lib/mypubsub"
	"github.com/evefleet/ssobackend/lib/myqueue"
	"github.com/evefleet/ssobackend/lib/mystore"
	"github.com/evefleet/ssobackend/lib/mytime"
	"github.com/evefleet/ssobackend/lib/myuuid"
	"github.com/evefleet/ssobackend/services/sso"
	"github.com/evefleet/ssobackend/services/sso/identity"
	"github.com/evefleet/ssobackend/services/sso/ssoclient"
	"github.com/evefleet/ssobackend/services/sso/ssoconfig"
	"github.com/evefleet/ssobackend/services/ssoaudit"
	"github.com/evefleet/ssobackend/services/warmup"
)

func main() {
	c := context.Background()

	cfg, err := ssoconfig.Load()
	if err != nil {
		log.Fatalf("Error loading sso config: %s", err)
	}

	router := mux.NewRouter()

	nower := mytime.RealNower{}
	uuider := myuuid.RealUUIDer{}

	pubsub, pubsubCleanup, err := mypubsub.New(c)
	if err != nil {
		log.Fatalf("Error creating pubsub: %s", err)
	}
	defer pubsubCleanup()

	queue, queueCleanup, err := myqueue.New(c)
	if err != nil {
		log.Fatalf("Error creating task queue: %s", err)
	}
	defer queueCleanup()

	publisher, publisherCleanup, err := mypublisher.New(c, pubsub, queue, nower)
	if err != nil {
		log.Fatalf("Error creating publisher: %s", err)
	}
	defer publisherCleanup()
	publisher.RegisterEndpoints(c, router)

	sessionStore, sessionStoreCleanup, err := mystore.New[sso.LoginSession](c)
	if err != nil {
		log.Fatalf("Error creating session store: %s", err)
	}
	defer sessionStoreCleanup()

	ssoClient := ssoclient.NewSSOClient(cfg.ClientID, cfg.ClientSecret, cfg.AuthHostname, cfg.TokenHostname, cfg.SendRedirectURI)

	var resolver identity.Resolver
	if cfg.IdentitySource == ssoconfig.IdentitySourceToken {
		resolver = identity.NewLocalDecoder()
	} else {
		resolver = identity.NewRemoteIntrospector(cfg.TokenHostname)
	}

	ssoService := sso.NewService(cfg, sessionStore, nower, uuider, ssoClient, resolver, publisher)
	err = ssoService.RegisterEndpoints(c, router)
	if err != nil {
		log.Fatalf("Error registering sso endpoints: %s", err)
	}

	activityStore, activityStoreCleanup, err := mystore.New[ssoaudit.CharacterActivity](c)
	if err != nil {
		log.Fatalf("Error creating activity store: %s", err)
	}
	defer activityStoreCleanup()

	auditService := ssoaudit.NewService(activityStore, pubsub, nower)
	err = auditService.RegisterEndpoints(c, router)
	if err != nil {
		log.Fatalf("Error registering ssoaudit endpoints: %s", err)
	}

	warmupService := warmup.NewService(sessionStore)
	warmupService.RegisterEndpoints(c, router)

	startWebServerBlocking(router)
}

func startWebServerBlocking(router *mux.Router) {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting webserver on port %s (try http://localhost:%s)", port, port)
	err := http.ListenAndServe(fmt.Sprintf(":%s", port), router)
	if err != nil {
		log.Fatalf("Error starting webserver on port %s: %s", port, err)
	}
}
