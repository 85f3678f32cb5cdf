package workers

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/novaos-app/novaos-api/internal/queue"
	"github.com/novaos-app/novaos-api/internal/services/mail"
)

// FeedbackMailer processes feedback email jobs
type FeedbackMailer struct {
	sender  mail.Sender
	from    string
	to      string
	subject string
	logger  *zap.Logger
}

// NewFeedbackMailer creates a new feedback mailer. from must be a verified
// sender address; to is the inbox that receives feedback.
func NewFeedbackMailer(sender mail.Sender, from, to string, logger *zap.Logger) *FeedbackMailer {
	return &FeedbackMailer{
		sender:  sender,
		from:    from,
		to:      to,
		subject: "New NovaOS feedback",
		logger:  logger,
	}
}

// ProcessFeedbackEmailJob delivers one feedback submission by email
func (m *FeedbackMailer) ProcessFeedbackEmailJob(ctx context.Context, job *queue.Job) error {
	if job.Email == "" || job.Message == "" {
		return fmt.Errorf("feedback email job missing email or message")
	}

	msg := &mail.Email{
		From:    m.from,
		To:      m.to,
		ReplyTo: job.Email,
		Subject: m.subject,
		Text:    fmt.Sprintf("From: %s\n\n%s", job.Email, job.Message),
	}

	if err := m.sender.Send(ctx, msg); err != nil {
		return fmt.Errorf("failed to deliver feedback email: %w", err)
	}

	m.logger.Info("feedback_email_delivered",
		zap.String("job_id", job.ID.String()),
	)
	return nil
}

// Run consumes feedback jobs until ctx is cancelled. Failed jobs are retried
// up to their retry budget, then dead-lettered.
func (m *FeedbackMailer) Run(ctx context.Context, jobQueue queue.JobQueue, prefetch int) error {
	msgs, errs, err := jobQueue.Consume(ctx, prefetch)
	if err != nil {
		return fmt.Errorf("failed to start consuming: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case consumeErr, ok := <-errs:
			if !ok {
				return nil
			}
			m.logger.Error("queue_consume_error", zap.Error(consumeErr))
		case msg, ok := <-msgs:
			if !ok {
				return nil
			}
			m.handle(ctx, jobQueue, msg)
		}
	}
}

func (m *FeedbackMailer) handle(ctx context.Context, jobQueue queue.JobQueue, msg *queue.Message) {
	job := msg.GetJob()

	if job.Type != queue.JobTypeFeedbackEmail {
		m.logger.Warn("unexpected_job_type",
			zap.String("job_id", job.ID.String()),
			zap.String("type", string(job.Type)),
		)
		_ = msg.Nack(false)
		return
	}

	if err := m.ProcessFeedbackEmailJob(ctx, job); err != nil {
		m.logger.Error("feedback_email_failed",
			zap.String("job_id", job.ID.String()),
			zap.Int("retry_count", job.RetryCount),
			zap.Error(err),
		)
		if job.CanRetry() {
			job.IncrementRetry()
			if enqErr := jobQueue.Enqueue(ctx, job); enqErr != nil {
				m.logger.Error("failed_to_reenqueue_job",
					zap.String("job_id", job.ID.String()),
					zap.Error(enqErr),
				)
				_ = msg.Nack(false)
				return
			}
			_ = msg.Ack()
			return
		}
		// Retries exhausted: dead-letter the message
		_ = msg.Nack(false)
		return
	}

	_ = msg.Ack()
}
