package engine

import "testing"

func TestEstimateDifficulty(t *testing.T) {
	tests := []struct {
		name            string
		taskName        string
		notes           string
		estimateMinutes int
		rating          Rating
		want            int
	}{
		{
			name:            "keywords stack with time and rating",
			taskName:        "Tricky database migration",
			notes:           "",
			estimateMinutes: 90,
			rating:          RatingHard,
			// time 30 + keywords (3 tricky + 5 database + 5 migration) + rating 40
			want: 83,
		},
		{
			name:            "rewrite from scratch counts once",
			taskName:        "Rewrite authentication from scratch",
			notes:           "",
			estimateMinutes: 90,
			rating:          RatingHard,
			// time 30 + keywords (8 rewrite/from scratch + 5 authentication) + rating 40
			want: 83,
		},
		{
			name:            "default rating is medium",
			taskName:        "Write weekly report",
			notes:           "",
			estimateMinutes: 30,
			rating:          RatingNone,
			want:            30,
		},
		{
			name:            "time component caps at 40",
			taskName:        "Plain task",
			notes:           "",
			estimateMinutes: 600,
			rating:          RatingNone,
			want:            60,
		},
		{
			name:            "keyword component caps at 20",
			taskName:        "Difficult tricky challenging rewrite of the authentication architecture",
			notes:           "security migration refactor from scratch",
			estimateMinutes: 0,
			rating:          RatingNone,
			want:            40,
		},
		{
			name:            "research keywords count once",
			taskName:        "Research and investigate and explore options",
			notes:           "",
			estimateMinutes: 0,
			rating:          RatingNone,
			want:            24,
		},
		{
			name:            "easy rating lowers the floor",
			taskName:        "Water the plants",
			notes:           "",
			estimateMinutes: 6,
			rating:          RatingEasy,
			want:            12,
		},
		{
			name:            "total caps at 100",
			taskName:        "Urgent difficult security infrastructure rewrite",
			notes:           "",
			estimateMinutes: 500,
			rating:          RatingHard,
			want:            100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EstimateDifficulty(tt.taskName, tt.notes, tt.estimateMinutes, tt.rating)
			if got != tt.want {
				t.Errorf("EstimateDifficulty() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRateDifficulty(t *testing.T) {
	if got := RateDifficulty(RatingEasy); got != 40 {
		t.Errorf("easy = %d, want 40", got)
	}
	if got := RateDifficulty(RatingMedium); got != 50 {
		t.Errorf("medium = %d, want 50", got)
	}
	if got := RateDifficulty(RatingHard); got != 60 {
		t.Errorf("hard = %d, want 60", got)
	}
}

// The two paths deliberately disagree: the estimator spans 0-100 from
// task signals, while the post-hoc rating collapses to a narrow 40-60
// band around medium.
func TestRatingPathsDiverge(t *testing.T) {
	estimated := EstimateDifficulty("Water the plants", "", 6, RatingEasy)
	rated := RateDifficulty(RatingEasy)
	if estimated == rated {
		t.Errorf("estimate (%d) and rating (%d) unexpectedly agree", estimated, rated)
	}
}
