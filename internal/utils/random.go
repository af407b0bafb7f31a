package utils

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/leadtrackhq/mini-crm/backend/internal/domain"
)

var firstNames = []string{
	"James", "Mary", "Robert", "Patricia", "John", "Jennifer", "Michael",
	"Linda", "David", "Elizabeth", "William", "Barbara", "Richard", "Susan",
	"Joseph", "Jessica", "Thomas", "Sarah", "Daniel", "Karen",
}

var lastNames = []string{
	"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller",
	"Davis", "Rodriguez", "Martinez", "Hernandez", "Lopez", "Gonzalez",
	"Wilson", "Anderson", "Thomas", "Taylor", "Moore", "Jackson", "Martin",
}

var companySuffixes = []string{
	"Corp", "Inc", "LLC", "Group", "Industries", "Solutions", "Partners",
	"Logistics", "Labs", "Holdings",
}

func GenerateRandomName() string {
	return firstNames[rand.Intn(len(firstNames))] + " " + lastNames[rand.Intn(len(lastNames))]
}

func GenerateRandomCompanyName() string {
	return lastNames[rand.Intn(len(lastNames))] + " " + companySuffixes[rand.Intn(len(companySuffixes))]
}

var digits = "0123456789"

func GenerateRandomEmail(name string, emailDomain string) string {
	local := strings.ToLower(strings.ReplaceAll(name, " ", "."))
	suffix := ""
	for i := 0; i < rand.Intn(3)+1; i++ {
		suffix += string(digits[rand.Intn(len(digits))])
	}
	return local + suffix + "@" + emailDomain
}

func GenerateRandomPhone() string {
	return fmt.Sprintf("+1-%03d-%03d-%04d", rand.Intn(900)+100, rand.Intn(900)+100, rand.Intn(10000))
}

var roles = []domain.Role{
	domain.RoleAdmin,
	domain.RoleSalesUser,
	domain.RoleSalesUser,
	domain.RoleSalesUser, // sales users should outnumber admins
}

func GenerateRandomRole() domain.Role {
	return roles[rand.Intn(len(roles))]
}

func GenerateRandomUser(password string, emailDomain string) (*domain.User, error) {
	name := GenerateRandomName()
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:         name,
		Email:        GenerateRandomEmail(name, emailDomain),
		PasswordHash: string(passwordHash),
		Role:         GenerateRandomRole(),
	}

	return user, nil
}

var leadStatuses = []domain.LeadStatus{
	domain.LeadStatusNew,
	domain.LeadStatusNew,
	domain.LeadStatusInProgress,
	domain.LeadStatusConverted,
	domain.LeadStatusLost,
}

// GenerateRandomLead leaves email, phone and assignee unset part of the
// time so listings exercise the nullable columns.
func GenerateRandomLead(emailDomain string, assigneeIDs []int64) *domain.Lead {
	name := GenerateRandomCompanyName()

	lead := &domain.Lead{
		CustomerName: name,
		Status:       leadStatuses[rand.Intn(len(leadStatuses))],
	}

	if rand.Intn(4) > 0 {
		email := GenerateRandomEmail(name, emailDomain)
		lead.Email = &email
	}
	if rand.Intn(4) > 0 {
		phone := GenerateRandomPhone()
		lead.Phone = &phone
	}
	if len(assigneeIDs) > 0 && rand.Intn(2) > 0 {
		id := assigneeIDs[rand.Intn(len(assigneeIDs))]
		lead.AssignedTo = &id
	}

	return lead
}

var followupNotes = []string{
	"Left a voicemail, call back next week.",
	"Sent pricing sheet, waiting on budget approval.",
	"Demo scheduled with the buying committee.",
	"Asked for a case study from a similar customer.",
	"Renewal conversation, keep it warm.",
}

func GenerateRandomFollowup(leadID int64, creatorID int64) *domain.Followup {
	// anywhere from a month in the past to a month out
	offset := time.Duration(rand.Intn(60*24)-30*24) * time.Hour

	followup := &domain.Followup{
		LeadID:       leadID,
		FollowupDate: time.Now().Add(offset),
		CreatedBy:    creatorID,
	}

	if rand.Intn(3) > 0 {
		notes := followupNotes[rand.Intn(len(followupNotes))]
		followup.Notes = &notes
	}

	return followup
}
