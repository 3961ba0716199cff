package cmd

import (
	"testing"
	"time"

	"github.com/ziadkadry99/docbrowser/internal/documents"
)

func TestSearchRows(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	docs := []documents.Document{
		{UUID: "r1", Name: "KPIs", Type: documents.TypeReport, MTime: now.Add(-3 * 24 * time.Hour).Unix()},
		{UUID: "x1", Name: "Board", Type: "dashboard", MTime: now.Unix()},
		{UUID: "q1", Name: "Revenue", Type: documents.TypeSQLQuery, MTime: now.Add(-time.Hour).Unix()},
	}

	rows := searchRows(docs, now)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Path != "/a/reports/r1" || rows[0].Modified != "3 days ago" {
		t.Errorf("unexpected first row: %+v", rows[0])
	}
	if rows[1].Path != "/a/sql/q1" {
		t.Errorf("unexpected second row: %+v", rows[1])
	}
}
