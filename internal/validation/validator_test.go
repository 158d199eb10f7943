package validation

import (
	"strings"
	"testing"

	"github.com/community-news-api/internal/models"
)

func validDraft() *models.ArticleDraft {
	return &models.ArticleDraft{
		Title:    "Korean Cultural Festival",
		Content:  "<p>Join us this weekend.</p>",
		Category: "Community",
		Author:   "Sarah Kim",
		Status:   "published",
	}
}

func TestValidateDraft(t *testing.T) {
	validator := NewValidator()

	tests := []struct {
		name       string
		mutate     func(d *models.ArticleDraft)
		wantErrors int
		wantFields []string
	}{
		{
			name:       "valid draft",
			mutate:     func(d *models.ArticleDraft) {},
			wantErrors: 0,
		},
		{
			name:       "status may be omitted",
			mutate:     func(d *models.ArticleDraft) { d.Status = "" },
			wantErrors: 0,
		},
		{
			name:       "missing title",
			mutate:     func(d *models.ArticleDraft) { d.Title = "" },
			wantErrors: 1,
			wantFields: []string{"title"},
		},
		{
			name:       "whitespace content counts as missing",
			mutate:     func(d *models.ArticleDraft) { d.Content = "   \n" },
			wantErrors: 1,
			wantFields: []string{"content"},
		},
		{
			name:       "category outside taxonomy",
			mutate:     func(d *models.ArticleDraft) { d.Category = "Events" },
			wantErrors: 1,
			wantFields: []string{"category"},
		},
		{
			name:       "unknown status",
			mutate:     func(d *models.ArticleDraft) { d.Status = "archived" },
			wantErrors: 1,
			wantFields: []string{"status"},
		},
		{
			name: "all required fields missing",
			mutate: func(d *models.ArticleDraft) {
				*d = models.ArticleDraft{}
			},
			wantErrors: 4,
			wantFields: []string{"title", "content", "category", "author"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft := validDraft()
			tt.mutate(draft)

			errs := validator.ValidateDraft(draft)
			if len(errs) != tt.wantErrors {
				t.Fatalf("Expected %d errors, got %d: %v", tt.wantErrors, len(errs), errs)
			}
			got := strings.Join(errs.Fields(), ",")
			for _, field := range tt.wantFields {
				if !strings.Contains(got, field) {
					t.Errorf("Expected error on %s, got fields %s", field, got)
				}
			}
		})
	}
}

func TestValidateDraft_Messages(t *testing.T) {
	draft := validDraft()
	draft.Category = "Sports"

	errs := NewValidator().ValidateDraft(draft)
	if len(errs) != 1 {
		t.Fatalf("Expected 1 error, got %d", len(errs))
	}
	if !strings.Contains(errs[0].Message, "Technology") {
		t.Errorf("Expected message to list categories, got %q", errs[0].Message)
	}
	if errs[0].Value != "Sports" {
		t.Errorf("Expected offending value to be kept, got %v", errs[0].Value)
	}
}

// BenchmarkValidateDraft benchmarks the full draft validation pipeline
func BenchmarkValidateDraft(b *testing.B) {
	v := NewValidator()
	draft := &models.ArticleDraft{
		Title:    "Night market returns",
		Content:  "<p>Food stalls</p>",
		Category: "Food",
		Author:   "Lee",
		Status:   "published",
	}

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		v.ValidateDraft(draft)
	}
}
