package service

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingMailer 记录投递请求，前 failures 次返回错误
type recordingMailer struct {
	mu       sync.Mutex
	failures int
	calls    []string
}

func (m *recordingMailer) Send(to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, to)
	if len(m.calls) <= m.failures {
		return errors.New("smtp unavailable")
	}
	return nil
}

func (m *recordingMailer) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

func TestMailServiceDelivers(t *testing.T) {
	mailer := &recordingMailer{}
	svc := newMailServiceWithMailer(mailer, 8, 1, 3)

	svc.Enqueue("alice@example.com", "Activate Your Account", "body")
	svc.Enqueue("bob@example.com", "Activate Your Account", "body")
	svc.Stop()

	assert.Equal(t, 2, mailer.callCount())
}

func TestMailServiceRetries(t *testing.T) {
	mailer := &recordingMailer{failures: 2}
	svc := newMailServiceWithMailer(mailer, 8, 1, 3)

	svc.Enqueue("alice@example.com", "Activate Your Account", "body")
	svc.Stop()

	// 前两次失败后第三次成功
	assert.Equal(t, 3, mailer.callCount())
}

func TestMailServiceGivesUpAfterMaxRetries(t *testing.T) {
	mailer := &recordingMailer{failures: 100}
	svc := newMailServiceWithMailer(mailer, 8, 1, 2)

	svc.Enqueue("alice@example.com", "Activate Your Account", "body")
	svc.Stop() // 放弃而不是无限重试，Stop 能正常返回

	assert.Equal(t, 2, mailer.callCount())
}

func TestMailServiceDropsWhenSaturated(t *testing.T) {
	block := make(chan struct{})
	mailer := &blockingMailer{release: block}
	svc := newMailServiceWithMailer(mailer, 1, 1, 1)

	// 第一封占住worker，第二封占满队列，第三封被丢弃
	svc.Enqueue("a@example.com", "s", "b")
	svc.Enqueue("b@example.com", "s", "b")
	svc.Enqueue("c@example.com", "s", "b") // 不阻塞即通过

	close(block)
	svc.Stop()

	require.LessOrEqual(t, mailer.callCount(), 2)
}

type blockingMailer struct {
	mu      sync.Mutex
	calls   int
	release chan struct{}
}

func (m *blockingMailer) Send(to, subject, body string) error {
	<-m.release
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	return nil
}

func (m *blockingMailer) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
