// Seed populates the database with demo users, rooms, memberships and
// messages. Intended for development environments only.
package main

import (
	"math/rand"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"chatapi/internal/config"
	"chatapi/internal/db"
	"chatapi/internal/logging"
	"chatapi/internal/model"
)

const seedPassword = "password"

func main() {
	cfg := config.Load()
	logging.Init(cfg.IsDevelopment())

	log.Info().Msg("starting seed")

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("database init")
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Room{},
		&model.Membership{},
		&model.Message{},
	); err != nil {
		log.Fatal().Err(err).Msg("auto-migrate")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), 10)
	if err != nil {
		log.Fatal().Err(err).Msg("hash seed password")
	}

	users := []*model.User{
		{Name: "Admin User", Email: "admin@example.com", PasswordHash: string(hash), Role: model.RoleAdmin},
		{Name: "Moderator User", Email: "moderator@example.com", PasswordHash: string(hash), Role: model.RoleModerator},
		{Name: "John Doe", Email: "john@example.com", PasswordHash: string(hash), Role: model.RoleUser},
		{Name: "Jane Smith", Email: "jane@example.com", PasswordHash: string(hash), Role: model.RoleUser},
		{Name: "Bob Wilson", Email: "bob@example.com", PasswordHash: string(hash), Role: model.RoleUser},
	}
	for _, u := range users {
		if err := gormDB.Where(model.User{Email: u.Email}).FirstOrCreate(u).Error; err != nil {
			log.Fatal().Err(err).Str("email", u.Email).Msg("seed user")
		}
	}
	admin, moderator, john, jane, bob := users[0], users[1], users[2], users[3], users[4]

	rooms := []struct {
		room    *model.Room
		creator *model.User
		members []*model.User
	}{
		{
			room: &model.Room{
				Name:        "General Chat",
				Description: "General discussion room for all users",
				CreatedBy:   admin.ID,
			},
			creator: admin,
			members: []*model.User{moderator, john, jane, bob},
		},
		{
			room: &model.Room{
				Name:        "Tech Talk",
				Description: "Discussion about technology and programming",
				CreatedBy:   moderator.ID,
			},
			creator: moderator,
			members: []*model.User{admin, john},
		},
		{
			room: &model.Room{
				Name:        "Music Lovers",
				Description: "Share your favorite music and discuss artists",
				CreatedBy:   john.ID,
			},
			creator: john,
			members: []*model.User{jane, bob},
		},
		{
			room: &model.Room{
				Name:        "Private Discussion",
				Description: "Private room for invited members only",
				IsPrivate:   true,
				CreatedBy:   admin.ID,
			},
			creator: admin,
			members: []*model.User{moderator},
		},
	}

	chatLines := []string{
		"Hello everyone!",
		"How is everyone doing today?",
		"This is a great room!",
		"Anyone want to chat?",
		"Thanks for the warm welcome!",
		"What topics are we discussing today?",
		"I'm new here, nice to meet you all!",
		"Great discussion going on here!",
	}

	for _, entry := range rooms {
		if err := gormDB.Where(model.Room{Name: entry.room.Name}).FirstOrCreate(entry.room).Error; err != nil {
			log.Fatal().Err(err).Str("room", entry.room.Name).Msg("seed room")
		}

		// Creator membership mirrors what room creation does.
		memberships := []*model.Membership{
			{UserID: entry.room.CreatedBy, RoomID: entry.room.ID, IsAdmin: true, JoinedAt: time.Now()},
		}
		for _, member := range entry.members {
			memberships = append(memberships, &model.Membership{
				UserID:   member.ID,
				RoomID:   entry.room.ID,
				JoinedAt: time.Now(),
			})
		}
		for _, m := range memberships {
			if err := gormDB.Where(model.Membership{UserID: m.UserID, RoomID: m.RoomID}).FirstOrCreate(m).Error; err != nil {
				log.Fatal().Err(err).Msg("seed membership")
			}
		}

		welcome := &model.Message{
			Content:         "Welcome to " + entry.room.Name + "! Feel free to start chatting.",
			UserID:          entry.room.CreatedBy,
			RoomID:          entry.room.ID,
			IsSystemMessage: true,
		}
		if err := gormDB.Where(model.Message{RoomID: entry.room.ID, IsSystemMessage: true}).FirstOrCreate(welcome).Error; err != nil {
			log.Fatal().Err(err).Msg("seed welcome message")
		}

		roomMembers := append([]*model.User{entry.creator}, entry.members...)
		for _, content := range chatLines {
			author := roomMembers[rand.Intn(len(roomMembers))]
			message := &model.Message{
				Content: content,
				UserID:  author.ID,
				RoomID:  entry.room.ID,
			}
			if err := gormDB.Where(model.Message{RoomID: entry.room.ID, Content: content}).FirstOrCreate(message).Error; err != nil {
				log.Fatal().Err(err).Msg("seed message")
			}
		}
	}

	log.Info().Msg("seed complete")
}
