// Command pocket-relay advertises a POCKET+ compressed telemetry feed on
// the local network via mDNS/DNS-SD, so downstream tooling can discover it
// without a hardcoded address.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/brutella/dnssd"
	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
)

// serviceType follows the DNS-SD convention <app>._tcp; downstream tooling
// filters on this to find POCKET+ feeds without a hardcoded host:port.
const serviceType = "_pocketplus-feed._tcp"

func main() {
	var (
		name = pflag.StringP("name", "n", "", "service name (defaults to the hostname)")
		port = pflag.IntP("port", "p", 7877, "TCP port the feed is served on")
	)
	pflag.Parse()

	serviceName := *name
	if serviceName == "" {
		host, err := os.Hostname()
		if err != nil {
			log.Fatal("resolving hostname", "err", err)
		}
		serviceName = "pocket-plus@" + host
	}

	cfg := dnssd.Config{
		Name: serviceName,
		Type: serviceType,
		Port: *port,
	}
	service, err := dnssd.NewService(cfg)
	if err != nil {
		log.Fatal("creating dnssd service", "err", err)
	}

	responder, err := dnssd.NewResponder()
	if err != nil {
		log.Fatal("creating dnssd responder", "err", err)
	}
	if _, err := responder.Add(service); err != nil {
		log.Fatal("registering service", "err", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	log.Info("advertising", "name", serviceName, "type", serviceType, "port", *port)
	if err := responder.Respond(ctx); err != nil && ctx.Err() == nil {
		log.Fatal("dnssd responder", "err", err)
	}
}
