// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"context"
	"crypto/tls"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/bitmark-inc/walletd/fault"
	"github.com/bitmark-inc/walletd/history"
	"github.com/bitmark-inc/walletd/ledger"
	"github.com/bitmark-inc/walletd/rpc/certificate"
	"github.com/bitmark-inc/walletd/transfer"
	"github.com/bitmark-inc/walletd/util"
)

const (
	readTimeout    = 10 * time.Second
	shutdownWait   = 10 * time.Second
	maximumHeaders = 1 << 20

	// transfers wait for confirmation so writes need more than
	// the usual few seconds
	minimumWriteTimeout = 120 * time.Second

	// credential loading and writing the reply
	writeMargin = 30 * time.Second
)

// Configuration - configuration file data for the HTTP listeners
type Configuration struct {
	Listen      []string `gluamapper:"listen" json:"listen"`
	UseTLS      bool     `gluamapper:"use_tls" json:"use_tls"`
	Certificate string   `gluamapper:"certificate" json:"certificate"`
	PrivateKey  string   `gluamapper:"private_key" json:"private_key"`
	AllowOrigin string   `gluamapper:"allow_origin" json:"allow_origin"`
	Airdrop     bool     `gluamapper:"airdrop" json:"airdrop"`
}

// Services - what the handlers call
type Services struct {
	Gateway    ledger.Gateway
	Transfers  *transfer.Orchestrator
	History    *history.Aggregator
	Node       string
	Commitment string

	// longest the ledger side of a transfer can take
	TransferLimit time.Duration
}

// a confirmed transfer must still be able to send its reply
func writeTimeout(services *Services) time.Duration {
	t := services.TransferLimit + transfer.BalanceTimeout + writeMargin
	if t < minimumWriteTimeout {
		return minimumWriteTimeout
	}
	return t
}

// globals
type rpcData struct {
	sync.RWMutex // to allow locking

	log *logger.L // logger

	servers []*http.Server

	// set once during initialise
	initialised bool
}

// global data
var globalData rpcData

// Initialise - start the HTTP listeners
func Initialise(configuration *Configuration, services *Services, gatherer prometheus.Gatherer, version string) error {

	globalData.Lock()
	defer globalData.Unlock()

	// no need to start if already started
	if globalData.initialised {
		return fault.AlreadyInitialised
	}

	log := logger.New("rpc")
	globalData.log = log
	log.Info("starting…")

	if 0 == len(configuration.Listen) {
		log.Error("no listen addresses")
		return fault.MissingParameters
	}

	var tlsConfiguration *tls.Config
	if configuration.UseTLS {
		c, fingerprint, err := certificate.Load(log, configuration.Certificate, configuration.PrivateKey)
		if nil != err {
			return err
		}
		tlsConfiguration = c
		log.Infof("SHA3-256 fingerprint: %x", fingerprint)
	}

	handler := NewHandler(services, configuration, gatherer, version, log)

	for _, l := range configuration.Listen {
		listen, err := util.CanonicalListen(l)
		if nil != err {
			log.Errorf("listen: %q  error: %s", l, err)
			shutdown(globalData.servers)
			globalData.servers = nil
			return err
		}
		log.Infof("starting server on: %q  tls: %t", listen, nil != tlsConfiguration)

		server := &http.Server{
			Addr:           listen,
			Handler:        handler,
			ReadTimeout:    readTimeout,
			WriteTimeout:   writeTimeout(services),
			MaxHeaderBytes: maximumHeaders,
		}

		ln, err := net.Listen("tcp", listen)
		if nil != err {
			log.Errorf("listen on: %q  error: %s", listen, err)
			shutdown(globalData.servers)
			globalData.servers = nil
			return err
		}
		globalData.servers = append(globalData.servers, server)

		go serve(log, server, ln, tlsConfiguration)
	}

	// all data initialised
	globalData.initialised = true

	return nil
}

// Finalise - stop all listeners, waiting a short time for requests in
// progress
func Finalise() error {

	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	shutdown(globalData.servers)
	globalData.servers = nil

	// finally...
	globalData.initialised = false

	globalData.log.Info("finished")
	globalData.log.Flush()

	return nil
}

func shutdown(servers []*http.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownWait)
	defer cancel()
	for _, s := range servers {
		_ = s.Shutdown(ctx)
	}
}

func serve(log *logger.L, server *http.Server, ln net.Listener, cfg *tls.Config) {
	var err error
	if nil == cfg {
		err = server.Serve(tcpKeepAliveListener{ln.(*net.TCPListener)})
	} else {
		err = ListenAndServeTLSKeyPair(server, ln, cfg)
	}
	if nil != err && http.ErrServerClosed != err {
		log.Errorf("server: %q  error: %s", server.Addr, err)
	}
}

type tcpKeepAliveListener struct {
	*net.TCPListener
}

func (ln tcpKeepAliveListener) Accept() (c net.Conn, err error) {
	tc, err := ln.AcceptTCP()
	if err != nil {
		return
	}
	tc.SetKeepAlive(true)
	tc.SetKeepAlivePeriod(3 * time.Minute)
	return tc, nil
}

// ListenAndServeTLSKeyPair - serve HTTPS on a listener using an in-memory TLS KeyPair
func ListenAndServeTLSKeyPair(s *http.Server, ln net.Listener, cfg *tls.Config) error {
	cfg.NextProtos = []string{"http/1.1"}

	tlsListener := tls.NewListener(tcpKeepAliveListener{ln.(*net.TCPListener)}, cfg)

	return s.Serve(tlsListener)
}
