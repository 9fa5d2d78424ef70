package payment

import (
	"context"
	"errors"
	"testing"

	"tutorhub/internal/domain"
	"tutorhub/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) GetByTransactionID(ctx context.Context, txnID string) (*domain.Booking, error) {
	args := m.Called(ctx, txnID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) SetTransactionID(ctx context.Context, id, txnID string) error {
	return m.Called(ctx, id, txnID).Error(0)
}

func (m *MockBookingRepository) UpdatePaymentStatus(ctx context.Context, id string, from, to domain.PaymentStatus) error {
	return m.Called(ctx, id, from, to).Error(0)
}

type MockTutorGate struct {
	mock.Mock
}

func (m *MockTutorGate) GetByID(ctx context.Context, id string) (*domain.Tutor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tutor), args.Error(1)
}

type MockRefunds struct {
	mock.Mock
}

func (m *MockRefunds) RefundCancelled(ctx context.Context, bookingID string) (domain.PaymentStatus, error) {
	args := m.Called(ctx, bookingID)
	return args.Get(0).(domain.PaymentStatus), args.Error(1)
}

type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) CreateIntent(ctx context.Context, p IntentParams) (*Intent, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Intent), args.Error(1)
}

func (m *MockProvider) ParseWebhook(payload []byte, signature string) (*Event, error) {
	args := m.Called(payload, signature)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Event), args.Error(1)
}

func confirmedBooking() *domain.Booking {
	return &domain.Booking{
		ID: "b1", StudentID: "s1", TutorID: "t1", Date: "2026-10-19",
		StartTime: "09:00", EndTime: "10:30",
		Status: domain.BookingConfirmed, PaymentStatus: domain.PaymentPending,
	}
}

func TestAmount(t *testing.T) {
	assert.Equal(t, int64(3000), Amount(20, confirmedBooking()))
	assert.Equal(t, int64(1999), Amount(19.99, &domain.Booking{StartTime: "09:00", EndTime: "10:00"}))
	assert.Equal(t, int64(0), Amount(20, &domain.Booking{StartTime: "10:00", EndTime: "09:00"}))
}

func TestService_CreateIntent(t *testing.T) {
	ctx := context.Background()
	bookings := new(MockBookingRepository)
	tutors := new(MockTutorGate)
	provider := new(MockProvider)
	svc := NewService(bookings, tutors, provider, new(MockRefunds), "", nil)

	bookings.On("GetByID", ctx, "b1").Return(confirmedBooking(), nil)
	tutors.On("GetByID", ctx, "t1").Return(&domain.Tutor{ID: "t1", Price: 20}, nil)
	provider.On("CreateIntent", ctx, IntentParams{BookingID: "b1", Amount: 3000, Currency: "usd"}).
		Return(&Intent{ID: "pi_1", ClientSecret: "pi_1_secret"}, nil)
	bookings.On("SetTransactionID", ctx, "b1", "pi_1").Return(nil)

	resp, err := svc.CreateIntent(ctx, "s1", "b1")
	require.NoError(t, err)
	assert.Equal(t, "pi_1_secret", resp.ClientSecret)
	assert.Equal(t, int64(3000), resp.Amount)
	assert.Equal(t, "usd", resp.Currency)
	bookings.AssertExpectations(t)
	provider.AssertExpectations(t)
}

func TestService_CreateIntent_Rejections(t *testing.T) {
	ctx := context.Background()

	pending := confirmedBooking()
	pending.Status = domain.BookingPending
	paid := confirmedBooking()
	paid.PaymentStatus = domain.PaymentPaid

	tests := []struct {
		name    string
		student string
		booking *domain.Booking
		err     error
		want    error
	}{
		{name: "unknown booking", student: "s1", err: repository.ErrNotFound, want: ErrBookingNotFound},
		{name: "someone else's booking", student: "s2", booking: confirmedBooking(), want: ErrNotOwner},
		{name: "not confirmed", student: "s1", booking: pending, want: ErrNotConfirmed},
		{name: "already paid", student: "s1", booking: paid, want: ErrAlreadyPaid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bookings := new(MockBookingRepository)
			provider := new(MockProvider)
			svc := NewService(bookings, new(MockTutorGate), provider, new(MockRefunds), "usd", nil)

			if tt.booking != nil {
				bookings.On("GetByID", ctx, "b1").Return(tt.booking, nil)
			} else {
				bookings.On("GetByID", ctx, "b1").Return(nil, tt.err)
			}

			_, err := svc.CreateIntent(ctx, tt.student, "b1")
			assert.ErrorIs(t, err, tt.want)
			provider.AssertNotCalled(t, "CreateIntent", mock.Anything, mock.Anything)
		})
	}
}

type webhookFixture struct {
	bookings *MockBookingRepository
	provider *MockProvider
	refunds  *MockRefunds
	svc      *Service
}

func newWebhookFixture() *webhookFixture {
	f := &webhookFixture{
		bookings: new(MockBookingRepository),
		provider: new(MockProvider),
		refunds:  new(MockRefunds),
	}
	f.svc = NewService(f.bookings, new(MockTutorGate), f.provider, f.refunds, "usd", nil)
	f.provider.On("ParseWebhook", mock.Anything, "sig").
		Return(&Event{ID: "evt_1", Type: EventIntentSucceeded, IntentID: "pi_1"}, nil)
	return f
}

func TestService_HandleWebhook_MarksPaid(t *testing.T) {
	ctx := context.Background()
	f := newWebhookFixture()

	f.bookings.On("GetByTransactionID", ctx, "pi_1").Return(confirmedBooking(), nil)
	f.bookings.On("UpdatePaymentStatus", ctx, "b1", domain.PaymentPending, domain.PaymentPaid).Return(nil)
	f.refunds.On("RefundCancelled", ctx, "b1").Return(domain.PaymentPaid, nil)

	require.NoError(t, f.svc.HandleWebhook(ctx, []byte(`{}`), "sig"))
	f.bookings.AssertExpectations(t)
	f.refunds.AssertExpectations(t)
}

func TestService_HandleWebhook_RedeliveryIsNoop(t *testing.T) {
	ctx := context.Background()

	paid := confirmedBooking()
	paid.PaymentStatus = domain.PaymentPaid
	refunded := confirmedBooking()
	refunded.Status = domain.BookingCancelled
	refunded.PaymentStatus = domain.PaymentRefunded

	for name, b := range map[string]*domain.Booking{"paid": paid, "refunded": refunded} {
		t.Run(name, func(t *testing.T) {
			f := newWebhookFixture()
			f.bookings.On("GetByTransactionID", ctx, "pi_1").Return(b, nil)
			f.refunds.On("RefundCancelled", ctx, "b1").Return(b.PaymentStatus, nil)

			require.NoError(t, f.svc.HandleWebhook(ctx, []byte(`{}`), "sig"))
			f.bookings.AssertNotCalled(t, "UpdatePaymentStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestService_HandleWebhook_CancelledBeforePaymentIsRefunded(t *testing.T) {
	ctx := context.Background()
	f := newWebhookFixture()

	cancelled := confirmedBooking()
	cancelled.Status = domain.BookingCancelled
	f.bookings.On("GetByTransactionID", ctx, "pi_1").Return(cancelled, nil)
	f.bookings.On("UpdatePaymentStatus", ctx, "b1", domain.PaymentPending, domain.PaymentPaid).Return(nil)
	f.refunds.On("RefundCancelled", ctx, "b1").Return(domain.PaymentRefunded, nil).Once()

	require.NoError(t, f.svc.HandleWebhook(ctx, []byte(`{}`), "sig"))
	f.bookings.AssertExpectations(t)
	f.refunds.AssertExpectations(t)
}

func TestService_HandleWebhook_ConcurrentPaymentChange(t *testing.T) {
	ctx := context.Background()
	f := newWebhookFixture()

	f.bookings.On("GetByTransactionID", ctx, "pi_1").Return(confirmedBooking(), nil)
	f.bookings.On("UpdatePaymentStatus", ctx, "b1", domain.PaymentPending, domain.PaymentPaid).Return(repository.ErrStale)
	f.refunds.On("RefundCancelled", ctx, "b1").Return(domain.PaymentRefunded, nil)

	require.NoError(t, f.svc.HandleWebhook(ctx, []byte(`{}`), "sig"))
	f.refunds.AssertExpectations(t)
}

func TestService_HandleWebhook_RefundFailureIsRetried(t *testing.T) {
	ctx := context.Background()
	f := newWebhookFixture()

	cancelled := confirmedBooking()
	cancelled.Status = domain.BookingCancelled
	cancelled.PaymentStatus = domain.PaymentPaid
	f.bookings.On("GetByTransactionID", ctx, "pi_1").Return(cancelled, nil)
	f.refunds.On("RefundCancelled", ctx, "b1").Return(domain.PaymentPaid, errors.New("provider down"))

	assert.Error(t, f.svc.HandleWebhook(ctx, []byte(`{}`), "sig"))
	f.bookings.AssertNotCalled(t, "UpdatePaymentStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestService_HandleWebhook_BadSignatureAndOtherEvents(t *testing.T) {
	ctx := context.Background()
	bookings := new(MockBookingRepository)
	provider := new(MockProvider)
	svc := NewService(bookings, new(MockTutorGate), provider, new(MockRefunds), "usd", nil)

	provider.On("ParseWebhook", mock.Anything, "bad").Return(nil, errors.New("signature mismatch"))
	provider.On("ParseWebhook", mock.Anything, "ok").Return(&Event{Type: "charge.refunded"}, nil)

	assert.ErrorIs(t, svc.HandleWebhook(ctx, []byte(`{}`), "bad"), ErrInvalidSignature)
	assert.NoError(t, svc.HandleWebhook(ctx, []byte(`{}`), "ok"))
	bookings.AssertNotCalled(t, "GetByTransactionID", mock.Anything, mock.Anything)
}
