package email

// Provider определяет интерфейс для отправки уведомлений пользователям.
// Отправка всегда best-effort: решения админа не откатываются из-за почты.
type Provider interface {
	// SendBanNotice уведомляет пользователя о блокировке аккаунта
	SendBanNotice(to, reason string) error

	// SendVerificationDecision уведомляет о решении по заявке на верификацию
	SendVerificationDecision(to string, approved bool, notes string) error

	// Close закрывает соединение с провайдером
	Close() error
}

// NoopProvider используется, когда email отключен в конфиге.
type NoopProvider struct{}

func (NoopProvider) SendBanNotice(_, _ string) error { return nil }

func (NoopProvider) SendVerificationDecision(_ string, _ bool, _ string) error { return nil }

func (NoopProvider) Close() error { return nil }
