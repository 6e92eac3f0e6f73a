package utils

import (
	"testing"

	"github.com/0xsoniclabs/alea/logger"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestNewProgressTracker(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := logger.NewMockLogger(ctrl)
	tracker := NewProgressTracker(100, mockLogger)
	assert.Equal(t, 100, tracker.target)
	assert.Equal(t, 0, tracker.step)
}

func TestProgressTracker_PrintProgress(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := logger.NewMockLogger(ctrl)
	tracker := NewProgressTracker(5*OperationThreshold, mockLogger)
	tracker.step = OperationThreshold - 1
	mockLogger.EXPECT().Infof(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(1)
	tracker.PrintProgress()
	assert.Equal(t, OperationThreshold, tracker.step)
}

func TestProgressTracker_ReportsOncePerThreshold(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := logger.NewMockLogger(ctrl)
	tracker := NewProgressTracker(2*OperationThreshold, mockLogger)
	mockLogger.EXPECT().Infof(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(2)
	for i := 0; i < 2*OperationThreshold; i++ {
		tracker.PrintProgress()
	}
}

func TestProgressTracker_NoReportBelowThreshold(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := logger.NewMockLogger(ctrl)
	tracker := NewProgressTracker(OperationThreshold, mockLogger)
	for i := 0; i < OperationThreshold-1; i++ {
		tracker.PrintProgress()
	}
	assert.Equal(t, OperationThreshold-1, tracker.step)
}
