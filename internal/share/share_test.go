package share

import "testing"

func TestURL(t *testing.T) {
	tests := []struct {
		name    string
		siteURL string
		slug    string
		want    string
		wantErr bool
	}{
		{
			name:    "basic",
			siteURL: "https://thecircuitsoul.com",
			slug:    "ai-agents-everywhere",
			want:    "https://thecircuitsoul.com/#ai-agents-everywhere",
		},
		{
			name:    "trailing slash trimmed",
			siteURL: "https://thecircuitsoul.com/",
			slug:    "ransomware-returns",
			want:    "https://thecircuitsoul.com/#ransomware-returns",
		},
		{
			name:    "http allowed",
			siteURL: "http://localhost:3000",
			slug:    "a",
			want:    "http://localhost:3000/#a",
		},
		{
			name:    "empty slug",
			siteURL: "https://thecircuitsoul.com",
			slug:    "",
			wantErr: true,
		},
		{
			name:    "bad scheme",
			siteURL: "ftp://thecircuitsoul.com",
			slug:    "a",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := URL(tt.siteURL, tt.slug)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("URL() = %q, want %q", got, tt.want)
			}
		})
	}
}
