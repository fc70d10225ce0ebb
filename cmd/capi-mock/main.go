package main

import (
	"net/http"
	"os"

	"github.com/Tap30/conversions-go/internal/mockserver"
	"github.com/sirupsen/logrus"
)

func main() {
	port := "3000"
	if p := os.Getenv("PORT"); p != "" {
		port = p
	}

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	server := mockserver.New(os.Getenv("CAPI_ACCESS_TOKEN"), log)

	log.Infof("Mock events endpoint running at http://localhost:%s", port)
	log.Infof("  POST /{version}/{pixel_id}/events")
	log.Infof("  GET  /stats")

	if err := http.ListenAndServe(":"+port, server.Router()); err != nil {
		log.WithError(err).Fatal("server error")
	}
}
