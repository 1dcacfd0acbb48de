package service_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartrecipe/backend/internal/service"
)

func TestClassifierServiceDisabledWithoutURL(t *testing.T) {
	assert.Nil(t, service.NewClassifierService("", time.Second))
}

func TestClassify(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		_, _, err := r.FormFile("image")
		require.NoError(t, err)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]service.Detection{
			{Label: "banana", Confidence: 0.93},
			{Label: "cell phone", Confidence: 0.71},
		})
	}))
	defer server.Close()

	svc := service.NewClassifierService(server.URL, 5*time.Second)
	require.NotNil(t, svc)

	detections, err := svc.Classify(context.Background(), []byte("fake-image"), "photo.jpg")
	require.NoError(t, err)
	require.Len(t, detections, 2)
	assert.Equal(t, "banana", detections[0].Label)
}

func TestClassifyErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model unavailable", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	svc := service.NewClassifierService(server.URL, 5*time.Second)
	_, err := svc.Classify(context.Background(), []byte("fake-image"), "photo.jpg")
	assert.Error(t, err)
}

func TestMapDetections(t *testing.T) {
	detections := []service.Detection{
		{Label: "red bell pepper", Confidence: 0.9},
		{Label: "cell phone", Confidence: 0.8},
		{Label: "Tomato", Confidence: 0.7},
		{Label: "cherry tomato", Confidence: 0.6}, // duplicate after mapping
	}

	ingredients := service.MapDetections(detections)
	assert.Equal(t, []string{"bell pepper", "tomato"}, ingredients)
}
