package controllers

import (
	"feedgate/backend/app/dto"
	"feedgate/backend/app/models"
)

func publicUser(u *models.User) dto.PublicUser {
	return dto.PublicUser{UserName: u.UserName, FirstName: u.FirstName, LastName: u.LastName, Email: u.Email}
}

func userProfile(u *models.User, followings []string) dto.UserProfile {
	if followings == nil {
		followings = []string{}
	}
	return dto.UserProfile{
		Email:      u.Email,
		UserName:   u.UserName,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Followings: followings,
		Subscribed: u.Subscribed,
	}
}

func moderatorProfile(m *models.Moderator) dto.ModeratorProfile {
	return dto.ModeratorProfile{Email: m.Email, FirstName: m.FirstName, LastName: m.LastName}
}

func postDTO(p *models.Post) dto.Post {
	return dto.Post{
		PostID:      p.ID,
		UserID:      p.UserID,
		UserName:    p.UserName,
		Title:       p.Title,
		Description: p.Description,
		Date:        p.Date,
	}
}

// feedPosts renders feed items. userId is never included; userName only
// when withAuthor is set.
func feedPosts(posts []models.Post, withAuthor bool) []dto.FeedPost {
	out := make([]dto.FeedPost, 0, len(posts))
	for _, p := range posts {
		item := dto.FeedPost{PostID: p.ID, Title: p.Title, Description: p.Description, Date: p.Date}
		if withAuthor {
			item.UserName = p.UserName
		}
		out = append(out, item)
	}
	return out
}
