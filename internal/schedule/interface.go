package schedule

import "context"

// UseCase defines the business logic interface for the schedule domain.
type UseCase interface {
	// Today returns the rest of today's events.
	Today(ctx context.Context) (TodayOutput, error)
	// Week returns the upcoming week grouped by day label.
	Week(ctx context.Context) (WeekOutput, error)
	// Search finds events by keyword, upcoming or across history.
	Search(ctx context.Context, input SearchInput) (SearchOutput, error)

	AddEvent(ctx context.Context, input AddEventInput) (AddEventOutput, error)
	RemoveEvents(ctx context.Context, ids []string) (BatchOutput, error)
	AddNote(ctx context.Context, input AddNoteInput) (AddEventOutput, error)

	AddBirthday(ctx context.Context, input AddBirthdayInput) (AddEventOutput, error)
	RemoveBirthday(ctx context.Context, name string) (BatchOutput, error)
	ShowBirthdays(ctx context.Context, scope BirthdayScope) (ShowBirthdaysOutput, error)

	// SuggestCatchUps predicts the next contact date per person from history.
	SuggestCatchUps(ctx context.Context, input SuggestCatchUpsInput) (SuggestCatchUpsOutput, error)
	AddCatchUp(ctx context.Context, input AddCatchUpInput) (AddEventOutput, error)
	ListCatchUps(ctx context.Context) (ListCatchUpsOutput, error)
	ClearCatchUps(ctx context.Context, name string) (BatchOutput, error)
}
