package service

import "testing"

func TestParseOMDbRating(t *testing.T) {
	tests := []struct {
		name   string
		resp   omdbResponse
		rating float64
		votes  int
	}{
		{
			name:   "正常响应",
			resp:   omdbResponse{Response: "True", IMDbRating: "8.5", IMDbVotes: "1,234,567"},
			rating: 8.5,
			votes:  1234567,
		},
		{
			name: "未找到",
			resp: omdbResponse{Response: "False"},
		},
		{
			name: "评分为 N/A",
			resp: omdbResponse{Response: "True", IMDbRating: "N/A", IMDbVotes: "N/A"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rating, votes, err := parseOMDbRating(tt.resp)
			if err != nil {
				t.Fatal(err)
			}
			if rating != tt.rating || votes != tt.votes {
				t.Errorf("parseOMDbRating = (%v, %d), want (%v, %d)", rating, votes, tt.rating, tt.votes)
			}
		})
	}
}
