package testutil

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/junioryono/ioc"
)

// Common test errors
var (
	ErrConstructor = errors.New("constructor error")
	ErrIntercept   = errors.New("interceptor error")
)

// A is a leaf dependency with a fixed name.
type A struct {
	ID   string
	Name string
}

func NewA() *A {
	return &A{ID: uuid.NewString(), Name: "a"}
}

// B depends on A.
type B struct {
	A        *A
	Injected bool
}

func NewB(a *A) *B {
	return &B{A: a, Injected: a != nil && a.Name == "a"}
}

// C depends on A and B.
type C struct {
	A        *A
	B        *B
	Injected bool
}

func NewC(a *A, b *B) *C {
	return &C{A: a, B: b, Injected: a.Name == "a" && b.Injected}
}

// D is an empty leaf type.
type D struct{}

// Grandfather is the root of a three-level hierarchy.
type Grandfather struct {
	A *A
}

func NewGrandfather(a *A) *Grandfather {
	return &Grandfather{A: a}
}

// Father extends Grandfather.
type Father struct {
	*Grandfather
	B *B
}

func NewFather(b *B, a *A) *Father {
	return &Father{Grandfather: NewGrandfather(a), B: b}
}

// Son extends Father.
type Son struct {
	*Father
	C *C
}

func NewSon(c *C, b *B, a *A) *Son {
	return &Son{Father: NewFather(b, a), C: c}
}

// Queue is a shared message queue.
type Queue struct {
	mu    sync.Mutex
	items []string
}

func (q *Queue) Push(msg string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = append(q.items, msg)
}

func (q *Queue) Pop() string {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return ""
	}
	msg := q.items[len(q.items)-1]
	q.items = q.items[:len(q.items)-1]
	return msg
}

func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Publisher pushes to a Queue.
type Publisher struct {
	Queue *Queue
}

func NewPublisher(q *Queue) *Publisher {
	return &Publisher{Queue: q}
}

func (p *Publisher) Send(msg string) {
	p.Queue.Push(msg)
}

// Subscriber pops from a Queue.
type Subscriber struct {
	Queue *Queue
}

func NewSubscriber(q *Queue) *Subscriber {
	return &Subscriber{Queue: q}
}

func (s *Subscriber) Consume() string {
	return s.Queue.Pop()
}

// Sender holds a Publisher.
type Sender struct {
	Publisher *Publisher
}

func NewSender(p *Publisher) *Sender {
	return &Sender{Publisher: p}
}

func (s *Sender) Send(msg string) {
	s.Publisher.Send(msg)
}

// Messenger extends Sender with a Subscriber.
type Messenger struct {
	*Sender
	Subscriber *Subscriber
}

func NewMessenger(s *Subscriber, p *Publisher) *Messenger {
	return &Messenger{Sender: NewSender(p), Subscriber: s}
}

func (m *Messenger) Publish(msg string) {
	m.Send(msg)
}

func (m *Messenger) Consume() string {
	return m.Subscriber.Consume()
}

// Settings can be frozen.
type Settings struct {
	ioc.FreezeGuard
	Name string
}

func NewSettings() *Settings {
	return &Settings{Name: "original"}
}

func (s *Settings) Rename(name string) error {
	if err := s.Mutable(); err != nil {
		return err
	}
	s.Name = name
	return nil
}

// FrozenHolder depends on a freezable dependency.
type FrozenHolder struct {
	ioc.FreezeGuard
	Settings *Settings
}

func NewFrozenHolder(s *Settings) *FrozenHolder {
	return &FrozenHolder{Settings: s}
}

// Counter accumulates additions.
type Counter struct {
	Total int
}

func (c *Counter) Add(n int) int {
	c.Total += n
	return c.Total
}

func (c *Counter) Value() int {
	return c.Total
}

func (c *Counter) Sum(values ...int) int {
	for _, v := range values {
		c.Total += v
	}
	return c.Total
}

func (c *Counter) Check(limit int) error {
	if c.Total > limit {
		return ErrConstructor
	}
	return nil
}

// Greeter is implemented by EnglishGreeter.
type Greeter interface {
	Greet(name string) string
}

type EnglishGreeter struct{}

func (EnglishGreeter) Greet(name string) string {
	return "hello " + name
}

// Broken always fails to construct.
type Broken struct{}

func NewBroken() (*Broken, error) {
	return nil, ErrConstructor
}

// NeedsBroken depends on Broken.
type NeedsBroken struct {
	Broken *Broken
}

func NewNeedsBroken(b *Broken) *NeedsBroken {
	return &NeedsBroken{Broken: b}
}
