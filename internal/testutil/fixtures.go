package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/junioryono/ioc"
)

// NewRegistry creates a registry that logs to the test output.
func NewRegistry(t *testing.T, opts ...ioc.Option) *ioc.Registry {
	t.Helper()

	opts = append([]ioc.Option{ioc.WithLogger(zaptest.NewLogger(t))}, opts...)
	r, err := ioc.New(opts...)
	require.NoError(t, err, "failed to create registry")
	return r
}

// Hierarchy declares A, B and C as leaves and the
// Grandfather <- Father <- Son chain on top of them.
var Hierarchy = ioc.NewModule("hierarchy",
	ioc.Type[*A](ioc.Constructor(NewA)),
	ioc.Type[*B](ioc.InjectType[*A](), ioc.Constructor(NewB)),
	ioc.Type[*C](ioc.InjectType[*A](), ioc.InjectType[*B](), ioc.Constructor(NewC)),
	ioc.Type[*Grandfather](ioc.InjectType[*A](), ioc.Constructor(NewGrandfather)),
	ioc.Type[*Father](ioc.Extends[*Grandfather](), ioc.InjectType[*B](), ioc.Constructor(NewFather)),
	ioc.Type[*Son](ioc.Extends[*Father](), ioc.InjectType[*C](), ioc.Constructor(NewSon)),
)

// Messaging declares a singleton Queue shared by publishers and subscribers
// and the Sender <- Messenger chain.
var Messaging = ioc.NewModule("messaging",
	ioc.Type[*Queue](ioc.AsSingleton()),
	ioc.Type[*Publisher](ioc.InjectType[*Queue](), ioc.Constructor(NewPublisher)),
	ioc.Type[*Subscriber](ioc.InjectType[*Queue](), ioc.Constructor(NewSubscriber)),
	ioc.Type[*Sender](ioc.InjectType[*Publisher](), ioc.Constructor(NewSender)),
	ioc.Type[*Messenger](ioc.Extends[*Sender](), ioc.InjectType[*Subscriber](), ioc.Constructor(NewMessenger)),
)
