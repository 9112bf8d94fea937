package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/quicklinkhq/quicklink-backend/api/middleware"
	ridesvc "github.com/quicklinkhq/quicklink-backend/internal/rides"
	"github.com/quicklinkhq/quicklink-backend/pkg/enums"
)

type testRidesService struct {
	tariffsFn  func() []ridesvc.VehiclePricing
	estimateFn func(ctx context.Context, input ridesvc.EstimateInput) (*ridesvc.Estimate, error)
	requestFn  func(ctx context.Context, customerID uuid.UUID, input ridesvc.RequestInput) (*ridesvc.RideDTO, error)
	listFn     func(ctx context.Context, customerID uuid.UUID) ([]ridesvc.RideDTO, error)
}

func (s *testRidesService) Tariffs() []ridesvc.VehiclePricing {
	if s.tariffsFn != nil {
		return s.tariffsFn()
	}
	return nil
}

func (s *testRidesService) Estimate(ctx context.Context, input ridesvc.EstimateInput) (*ridesvc.Estimate, error) {
	if s.estimateFn != nil {
		return s.estimateFn(ctx, input)
	}
	return &ridesvc.Estimate{}, nil
}

func (s *testRidesService) Request(ctx context.Context, customerID uuid.UUID, input ridesvc.RequestInput) (*ridesvc.RideDTO, error) {
	if s.requestFn != nil {
		return s.requestFn(ctx, customerID, input)
	}
	return &ridesvc.RideDTO{}, nil
}

func (s *testRidesService) ListMine(ctx context.Context, customerID uuid.UUID) ([]ridesvc.RideDTO, error) {
	if s.listFn != nil {
		return s.listFn(ctx, customerID)
	}
	return nil, nil
}

func TestRidesEstimateDecodesPayload(t *testing.T) {
	var captured ridesvc.EstimateInput
	svc := &testRidesService{
		estimateFn: func(ctx context.Context, input ridesvc.EstimateInput) (*ridesvc.Estimate, error) {
			captured = input
			return &ridesvc.Estimate{FareCents: 27500}, nil
		},
	}
	handler := RidesEstimate(svc, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/rides/estimate", strings.NewReader(`{"vehicle_class":"economy","distance_km":2.5}`))
	resp := httptest.NewRecorder()
	handler(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if captured.VehicleClass != enums.VehicleClassEconomy || captured.DistanceKm != 2.5 {
		t.Fatalf("unexpected input %+v", captured)
	}
}

func TestRidesEstimateRejectsUnknownClass(t *testing.T) {
	handler := RidesEstimate(&testRidesService{}, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/rides/estimate", strings.NewReader(`{"vehicle_class":"limousine","distance_km":2}`))
	resp := httptest.NewRecorder()
	handler(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestRidesRequestRequiresUserContext(t *testing.T) {
	handler := RidesRequest(&testRidesService{}, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/rides", strings.NewReader(`{"vehicle_class":"economy","pickup":{"label":"A"},"dropoff":{"label":"B"},"distance_km":3}`))
	resp := httptest.NewRecorder()
	handler(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestRidesRequestCreatesBooking(t *testing.T) {
	customerID := uuid.New()
	var capturedCustomer uuid.UUID
	var captured ridesvc.RequestInput
	svc := &testRidesService{
		requestFn: func(ctx context.Context, cid uuid.UUID, input ridesvc.RequestInput) (*ridesvc.RideDTO, error) {
			capturedCustomer = cid
			captured = input
			return &ridesvc.RideDTO{ID: uuid.New(), CustomerID: cid}, nil
		},
	}
	handler := RidesRequest(svc, testLogger())

	payload := `{"vehicle_class":"comfort","pickup":{"label":"CBD","lat":-1.2864,"lng":36.8172},"dropoff":{"label":"Westlands","lat":-1.2683,"lng":36.8111},"distance_km":6.4,"payment_method":"mpesa"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/rides", strings.NewReader(payload))
	req = req.WithContext(middleware.WithUserID(req.Context(), customerID.String()))
	resp := httptest.NewRecorder()
	handler(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
	if capturedCustomer != customerID {
		t.Fatalf("unexpected customer %s", capturedCustomer)
	}
	if captured.VehicleClass != enums.VehicleClassComfort || captured.PaymentMethod != enums.PaymentMethodMpesa {
		t.Fatalf("unexpected input %+v", captured)
	}
	if captured.Pickup.Label != "CBD" || captured.Dropoff.Label != "Westlands" {
		t.Fatalf("unexpected locations %+v", captured)
	}
}
