package cache

import (
	"context"
	"fmt"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/listinglens/dashboard/internal/domain"
)

func newReport(id string) *domain.Report {
	return &domain.Report{ID: id, RowCount: 3}
}

func TestReportCache_SaveAndGet(t *testing.T) {
	cache := NewReportCache(time.Minute)
	defer cache.Close()
	ctx := context.Background()

	tests := []struct {
		name    string
		report  *domain.Report
		wantErr bool
	}{
		{
			name:    "store and retrieve report",
			report:  newReport("report-1"),
			wantErr: false,
		},
		{
			name: "store report with non-finite values",
			report: &domain.Report{
				ID:          "report-2",
				TopReviewed: []domain.Listing{{ProductName: "Free", ValueMetric: math.Inf(1)}},
			},
			wantErr: false,
		},
		{
			name:    "nil report",
			report:  nil,
			wantErr: true,
		},
		{
			name:    "report without ID",
			report:  newReport(""),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := cache.Save(ctx, tt.report)
			if (err != nil) != tt.wantErr {
				t.Errorf("Save() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr {
				return
			}

			got, err := cache.Get(ctx, tt.report.ID)
			if err != nil {
				t.Errorf("Get() error = %v", err)
				return
			}
			if got != tt.report {
				t.Errorf("Get() = %p, want the saved report %p", got, tt.report)
			}
		})
	}
}

func TestReportCache_Get_NotFound(t *testing.T) {
	cache := NewReportCache(time.Minute)
	defer cache.Close()

	_, err := cache.Get(context.Background(), "non-existent-id")
	if err != domain.ErrReportNotFound {
		t.Errorf("Get() error = %v, want %v", err, domain.ErrReportNotFound)
	}
}

func TestReportCache_Expiration(t *testing.T) {
	cache := NewReportCache(10 * time.Millisecond)
	defer cache.Close()
	ctx := context.Background()

	if err := cache.Save(ctx, newReport("short-lived")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	time.Sleep(20 * time.Millisecond)

	// Should get not found after expiration
	_, err := cache.Get(ctx, "short-lived")
	if err != domain.ErrReportNotFound {
		t.Errorf("Get() after expiration error = %v, want %v", err, domain.ErrReportNotFound)
	}

	// The sweep drops the entry
	if removed := cache.removeExpired(time.Now()); removed != 1 {
		t.Errorf("removeExpired() = %d, want 1", removed)
	}
	if size := cache.Size(); size != 0 {
		t.Errorf("Size() = %d, want 0 after sweep", size)
	}
}

func TestReportCache_Size(t *testing.T) {
	cache := NewReportCache(time.Minute)
	defer cache.Close()
	ctx := context.Background()

	// Initial size should be 0
	if size := cache.Size(); size != 0 {
		t.Errorf("Size() = %d, want 0 for empty cache", size)
	}

	for i := 0; i < 5; i++ {
		if err := cache.Save(ctx, newReport(fmt.Sprintf("report-%d", i))); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
	}
	if size := cache.Size(); size != 5 {
		t.Errorf("Size() = %d, want 5", size)
	}

	// Saving the same ID again replaces the entry
	if err := cache.Save(ctx, newReport("report-0")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if size := cache.Size(); size != 5 {
		t.Errorf("Size() = %d, want 5 after overwrite", size)
	}
}

func TestReportCache_Concurrent(t *testing.T) {
	cache := NewReportCache(time.Minute)
	defer cache.Close()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			reportID := fmt.Sprintf("concurrent-%d", id)
			if err := cache.Save(ctx, newReport(reportID)); err != nil {
				t.Errorf("Concurrent Save() error = %v", err)
			}
			if _, err := cache.Get(ctx, reportID); err != nil {
				t.Errorf("Concurrent Get() error = %v", err)
			}
		}(i)
	}
	wg.Wait()

	if size := cache.Size(); size != 10 {
		t.Errorf("Size() = %d, want 10", size)
	}
}

func TestReportCache_CloseIsIdempotent(t *testing.T) {
	cache := NewReportCache(time.Minute)
	cache.Close()
	cache.Close()
}

func TestCleanupInterval(t *testing.T) {
	tests := []struct {
		ttl  time.Duration
		want time.Duration
	}{
		{ttl: 10 * time.Millisecond, want: time.Second},
		{ttl: 30 * time.Minute, want: 10 * time.Minute},
		{ttl: 4 * time.Minute, want: 2 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.ttl.String(), func(t *testing.T) {
			if got := cleanupInterval(tt.ttl); got != tt.want {
				t.Errorf("cleanupInterval(%v) = %v, want %v", tt.ttl, got, tt.want)
			}
		})
	}
}
