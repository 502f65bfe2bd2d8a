package service

import (
	"context"
	"meetapp/cmd/internal/domain/entity"
	"meetapp/cmd/internal/scheduling"
	"meetapp/cmd/internal/utils"
	"meetapp/cmd/internal/utils/apierror"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
)

type MeetupRepository interface {
	FindPage(ctx context.Context, filter entity.MeetupFilter, page entity.Page) ([]*entity.Meetup, int64, error)
	FindByUserID(ctx context.Context, userID int) ([]*entity.Meetup, error)
}

type MeetupPolicy interface {
	CreateMeetup(ctx context.Context, ownerID int, draft *scheduling.MeetupDraft) (*entity.Meetup, error)
	UpdateMeetup(ctx context.Context, requesterID, meetupID int, patch *scheduling.MeetupPatch) (*entity.Meetup, error)
	DeleteMeetup(ctx context.Context, requesterID, meetupID int) error
}

type ListingAnnotator interface {
	Annotate(ctx context.Context, viewerID int, meetups []*entity.Meetup, view scheduling.View) ([]*scheduling.Listing, error)
}

type CreateMeetupRequest struct {
	Title       string `json:"title" validate:"required,max=128"`
	Description string `json:"description" validate:"required,max=2048"`
	Location    string `json:"location" validate:"required,max=256"`
	Date        string `json:"date" validate:"required,iso8601"`
	FileID      int    `json:"file_id" validate:"required,min=1"`
}

type UpdateMeetupRequest struct {
	Title       *string `json:"title" validate:"omitempty,max=128"`
	Description *string `json:"description" validate:"omitempty,max=2048"`
	Location    *string `json:"location" validate:"omitempty,max=256"`
	Date        *string `json:"date" validate:"omitempty,iso8601"`
	FileID      *int    `json:"file_id" validate:"omitempty,min=1"`
}

// MeetupQuery filters the browse listing. Date is an optional "YYYY-MM-DD" UTC day.
type MeetupQuery struct {
	Date string
	Page int
}

type MeetupsPage struct {
	Meetups    []*MeetupResponse
	TotalPages int64
}

type DefaultMeetupService struct {
	MeetupRepo MeetupRepository
	Policy     MeetupPolicy
	Annotator  ListingAnnotator
	Validate   *validator.Validate
	PublicURL  string
}

func NewMeetupService(meetupRepo MeetupRepository, policy MeetupPolicy, annotator ListingAnnotator, validate *validator.Validate, publicURL string) *DefaultMeetupService {
	return &DefaultMeetupService{
		MeetupRepo: meetupRepo,
		Policy:     policy,
		Annotator:  annotator,
		Validate:   validate,
		PublicURL:  publicURL,
	}
}

// GetMeetups lists meetups organized by others, ascending by date.
func (m *DefaultMeetupService) GetMeetups(ctx context.Context, query *MeetupQuery, viewerID int) (*MeetupsPage, apierror.ErrorResponse) {
	filter := entity.MeetupFilter{ExcludeUserID: viewerID}
	if query.Date != "" {
		from, to, err := utils.DayBounds(query.Date)
		if err != nil {
			return nil, apierror.NewInvalidParamTypeError("date", "YYYY-MM-DD")
		}
		filter.From, filter.To = from, to
	}

	page := entity.NewPage(query.Page)
	meetups, total, err := m.MeetupRepo.FindPage(ctx, filter, page)
	if err != nil {
		log.Errorf("failed to list meetups for user %d: %v", viewerID, err)
		return nil, apierror.InternalServerError
	}

	resp, apierr := m.annotate(ctx, viewerID, meetups, scheduling.BrowseView)
	if apierr != nil {
		return nil, apierr
	}
	return &MeetupsPage{Meetups: resp, TotalPages: page.TotalPages(total)}, nil
}

// GetOrganizing lists the viewer's own meetups, ascending by date.
func (m *DefaultMeetupService) GetOrganizing(ctx context.Context, viewerID int) ([]*MeetupResponse, apierror.ErrorResponse) {
	meetups, err := m.MeetupRepo.FindByUserID(ctx, viewerID)
	if err != nil {
		log.Errorf("failed to list meetups organized by user %d: %v", viewerID, err)
		return nil, apierror.InternalServerError
	}
	return m.annotate(ctx, viewerID, meetups, scheduling.OrganizerView)
}

func (m *DefaultMeetupService) CreateMeetup(ctx context.Context, req *CreateMeetupRequest, viewerID int) (*MeetupResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := m.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	date, err := utils.ParseTime(req.Date)
	if err != nil {
		return nil, apierror.MalformedBodyError
	}

	fileID := req.FileID
	meetup, err := m.Policy.CreateMeetup(ctx, viewerID, &scheduling.MeetupDraft{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Date:        date,
		FileID:      &fileID,
	})
	if err != nil {
		return nil, fromSchedulingError(err, "create meetup")
	}
	return m.single(ctx, viewerID, meetup)
}

func (m *DefaultMeetupService) UpdateMeetup(ctx context.Context, id int, req *UpdateMeetupRequest, viewerID int) (*MeetupResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := m.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	patch := &scheduling.MeetupPatch{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		FileID:      req.FileID,
	}
	if req.Date != nil {
		date, err := utils.ParseTime(*req.Date)
		if err != nil {
			return nil, apierror.MalformedBodyError
		}
		patch.Date = &date
	}

	meetup, err := m.Policy.UpdateMeetup(ctx, viewerID, id, patch)
	if err != nil {
		return nil, fromSchedulingError(err, "update meetup")
	}
	return m.single(ctx, viewerID, meetup)
}

func (m *DefaultMeetupService) DeleteMeetup(ctx context.Context, id int, viewerID int) apierror.ErrorResponse {
	if err := m.Policy.DeleteMeetup(ctx, viewerID, id); err != nil {
		return fromSchedulingError(err, "delete meetup")
	}
	return nil
}

func (m *DefaultMeetupService) single(ctx context.Context, viewerID int, meetup *entity.Meetup) (*MeetupResponse, apierror.ErrorResponse) {
	resp, apierr := m.annotate(ctx, viewerID, []*entity.Meetup{meetup}, scheduling.OrganizerView)
	if apierr != nil {
		return nil, apierr
	}
	return resp[0], nil
}

func (m *DefaultMeetupService) annotate(ctx context.Context, viewerID int, meetups []*entity.Meetup, view scheduling.View) ([]*MeetupResponse, apierror.ErrorResponse) {
	listings, err := m.Annotator.Annotate(ctx, viewerID, meetups, view)
	if err != nil {
		return nil, fromSchedulingError(err, "annotate meetups")
	}

	resp := make([]*MeetupResponse, len(listings))
	for i, listing := range listings {
		resp[i] = toMeetupResponse(listing, m.PublicURL)
	}
	return resp, nil
}
