package myhttp

import (
	"fmt"
	"net/http"
	"os"
)

func HostnameWithScheme(r *http.Request) string {
	if hostname := os.Getenv("EVESSO_EXTERNAL_HOSTNAME"); hostname != "" {
		return hostname
	}

	scheme := "https"
	if r.TLS == nil {
		scheme = "http"
	}

	return fmt.Sprintf("%s://%s", scheme, r.Host)
}

// GuessHostnameWithScheme is for call sites that have no request at hand,
// such as composing the push endpoint of a subscription.
func GuessHostnameWithScheme() string {
	if hostname := os.Getenv("EVESSO_EXTERNAL_HOSTNAME"); hostname != "" {
		return hostname
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	return fmt.Sprintf("http://localhost:%s", port)
}
