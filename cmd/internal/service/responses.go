package service

import (
	"meetapp/cmd/internal/domain/entity"
	"meetapp/cmd/internal/scheduling"
	"meetapp/cmd/internal/utils"
	"strings"
)

type UserResponse struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type FileResponse struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Path string `json:"path"`
	URL  string `json:"url"`
}

type MeetupResponse struct {
	ID           int           `json:"id"`
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	Location     string        `json:"location"`
	Date         string        `json:"date"`
	Past         bool          `json:"past"`
	CanSubscribe *bool         `json:"can_subscribe,omitempty"`
	FileID       *int          `json:"file_id"`
	Organizer    *UserResponse `json:"organizer,omitempty"`
	Banner       *FileResponse `json:"banner,omitempty"`
	CreatedAt    string        `json:"created_at"`
	UpdatedAt    string        `json:"updated_at"`
}

type SubscriptionResponse struct {
	ID        int             `json:"id"`
	MeetupID  int             `json:"meetup_id"`
	Meetup    *MeetupResponse `json:"meetup,omitempty"`
	CreatedAt string          `json:"created_at"`
}

func toUserResponse(user *entity.User) *UserResponse {
	return &UserResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	}
}

func toFileResponse(file *entity.File, publicURL string) *FileResponse {
	return &FileResponse{
		ID:   file.ID,
		Name: file.Name,
		Path: file.Path,
		URL:  strings.TrimSuffix(publicURL, "/") + "/files/" + file.Path,
	}
}

func toMeetupResponse(listing *scheduling.Listing, publicURL string) *MeetupResponse {
	m := listing.Meetup
	resp := &MeetupResponse{
		ID:           m.ID,
		Title:        m.Title,
		Description:  m.Description,
		Location:     m.Location,
		Date:         utils.FormatEpoch(m.Date),
		Past:         listing.Past,
		CanSubscribe: listing.CanSubscribe,
		FileID:       m.FileID,
		CreatedAt:    utils.FormatEpoch(m.CreatedAt),
		UpdatedAt:    utils.FormatEpoch(m.UpdatedAt),
	}
	if m.Organizer.ID != 0 {
		resp.Organizer = toUserResponse(&m.Organizer)
	}
	if m.Banner != nil {
		resp.Banner = toFileResponse(m.Banner, publicURL)
	}
	return resp
}
