package grpcinterface

import (
	"context"
	"fmt"
	"math/big"
	"net/http"
	"path/filepath"
	"time"

	pb "github.com/colosseum-network/colosseumd/api-spec/colosseum/v1"
	"github.com/colosseum-network/colosseumd/internal/core/application/competition"
	"github.com/colosseum-network/colosseumd/internal/core/application/oracle"
	"github.com/colosseum-network/colosseumd/internal/core/application/swap"
	"github.com/colosseum-network/colosseumd/internal/core/ports"
	interfaces "github.com/colosseum-network/colosseumd/internal/interfaces"
	grpchandler "github.com/colosseum-network/colosseumd/internal/interfaces/grpc/handler"
	"github.com/colosseum-network/colosseumd/internal/interfaces/grpc/interceptor"
	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc"
)

const (
	// OperatorTLSKeyFile is the name of the TLS key file for the Operator
	// interface.
	OperatorTLSKeyFile = "key.pem"
	// OperatorTLSCertFile is the name of the TLS certificate file for the
	// Operator interface.
	OperatorTLSCertFile = "cert.pem"

	shutdownTimeout = 5 * time.Second
)

var serialNumberLimit = new(big.Int).Lsh(big.NewInt(1), 128)

type service struct {
	opts ServiceOpts

	operatorServer     *grpc.Server
	traderServer       *grpc.Server
	operatorHTTPServer *http.Server
	traderHTTPServer   *http.Server
}

// ServiceOpts are the options of the gRPC interface. The operator interface
// hosts all the admin RPCs, and must be bound to an address not exposed to
// participants.
type ServiceOpts struct {
	Datadir     string
	TLSLocation string

	OperatorAddress      string
	OperatorTLS          bool
	OperatorExtraIPs     []string
	OperatorExtraDomains []string

	TraderAddress string
	TraderTLSKey  string
	TraderTLSCert string

	OracleSvc      *oracle.Service
	SwapSvc        *swap.Service
	CompetitionSvc *competition.Service
	PubSubSvc      ports.PubSub
}

func (o ServiceOpts) validate() error {
	if !isValidAddress(o.OperatorAddress) {
		return fmt.Errorf("invalid operator address %s", o.OperatorAddress)
	}
	if !isValidAddress(o.TraderAddress) {
		return fmt.Errorf("invalid trader address %s", o.TraderAddress)
	}
	if o.OperatorAddress == o.TraderAddress {
		return fmt.Errorf("operator and trader interfaces must listen on different addresses")
	}
	if o.OperatorTLS && !pathExists(o.Datadir) {
		return fmt.Errorf("%s: datadir must be an existing directory", o.Datadir)
	}
	if (o.TraderTLSKey == "") != (o.TraderTLSCert == "") {
		return fmt.Errorf("trader TLS key and certificate must be both set or both empty")
	}
	if o.TraderTLSKey != "" {
		if !pathExists(o.TraderTLSKey) || !pathExists(o.TraderTLSCert) {
			return fmt.Errorf("trader TLS key or certificate not found")
		}
	}
	if o.OracleSvc == nil {
		return fmt.Errorf("oracle app service must not be null")
	}
	if o.SwapSvc == nil {
		return fmt.Errorf("swap app service must not be null")
	}
	if o.CompetitionSvc == nil {
		return fmt.Errorf("competition app service must not be null")
	}
	if o.PubSubSvc == nil {
		return fmt.Errorf("pubsub service must not be null")
	}
	return nil
}

func (o ServiceOpts) tlsDatadir() string {
	return filepath.Join(o.Datadir, o.TLSLocation)
}

func (o ServiceOpts) operatorTLSKey() string {
	if !o.OperatorTLS {
		return ""
	}
	return filepath.Join(o.tlsDatadir(), OperatorTLSKeyFile)
}

func (o ServiceOpts) operatorTLSCert() string {
	if !o.OperatorTLS {
		return ""
	}
	return filepath.Join(o.tlsDatadir(), OperatorTLSCertFile)
}

// NewService returns the gRPC interface of the daemon. If enabled, the
// self-signed TLS key pair of the operator interface is created in the
// datadir, if not existing.
func NewService(opts ServiceOpts) (interfaces.Service, error) {
	if err := opts.validate(); err != nil {
		return nil, fmt.Errorf("invalid opts: %s", err)
	}

	if opts.OperatorTLS {
		if err := generateOperatorTLSKeyCert(
			opts.tlsDatadir(), opts.OperatorExtraIPs, opts.OperatorExtraDomains,
		); err != nil {
			return nil, err
		}
	}

	return &service{opts: opts}, nil
}

func (s *service) Start() error {
	operatorHandler := grpchandler.NewOperatorHandler(
		s.opts.OracleSvc, s.opts.SwapSvc, s.opts.CompetitionSvc, s.opts.PubSubSvc,
	)
	traderHandler := grpchandler.NewTraderHandler(
		s.opts.OracleSvc, s.opts.SwapSvc, s.opts.CompetitionSvc,
	)

	operatorServer := grpc.NewServer(
		interceptor.UnaryInterceptor(),
		interceptor.StreamInterceptor(),
	)
	traderServer := grpc.NewServer(
		interceptor.UnaryInterceptor(),
		interceptor.StreamInterceptor(),
	)
	pb.RegisterOperatorServer(operatorServer, operatorHandler)
	pb.RegisterTraderServer(traderServer, traderHandler)

	// Serve grpc and grpc-web multiplexed on the same port
	operatorHTTPServer, err := serve(
		s.opts.OperatorAddress,
		s.opts.operatorTLSKey(), s.opts.operatorTLSCert(),
		operatorServer,
	)
	if err != nil {
		return err
	}
	log.Infof("operator interface is listening on %s", s.opts.OperatorAddress)

	traderHTTPServer, err := serve(
		s.opts.TraderAddress, s.opts.TraderTLSKey, s.opts.TraderTLSCert,
		traderServer,
	)
	if err != nil {
		operatorHTTPServer.Close()
		return err
	}
	log.Infof("trader interface is listening on %s", s.opts.TraderAddress)

	s.operatorServer = operatorServer
	s.traderServer = traderServer
	s.operatorHTTPServer = operatorHTTPServer
	s.traderHTTPServer = traderHTTPServer
	return nil
}

func (s *service) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.operatorHTTPServer != nil {
		if err := s.operatorHTTPServer.Shutdown(ctx); err != nil {
			s.operatorHTTPServer.Close()
		}
		s.operatorServer.Stop()
		log.Debug("disabled operator interface")
	}

	if s.traderHTTPServer != nil {
		if err := s.traderHTTPServer.Shutdown(ctx); err != nil {
			s.traderHTTPServer.Close()
		}
		s.traderServer.Stop()
		log.Debug("disabled trader interface")
	}
}
