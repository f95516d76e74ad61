// Package testing provides test utilities and database setup for testing the cargo tracking system
package testing

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/edzeame-del/ghana-cargo-logistics/models"
	"github.com/edzeame-del/ghana-cargo-logistics/utils"
	"golang.org/x/crypto/bcrypt"
)

// TestFixtures provides helper methods for creating test data
type TestFixtures struct {
	DB *TestDB
}

// NewTestFixtures creates a new test fixtures instance
func NewTestFixtures(db *TestDB) *TestFixtures {
	return &TestFixtures{DB: db}
}

// CreateTestUser creates a staff account with the password "TestPass123!"
func (tf *TestFixtures) CreateTestUser(username string) (*models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("TestPass123!"), bcrypt.MinCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		PasswordHash: string(hashedPassword),
		CreatedAt:    utils.UTCNow(),
		UpdatedAt:    utils.UTCNow(),
	}

	if err := tf.DB.DB.Create(user).Error; err != nil {
		return nil, fmt.Errorf("failed to create test user: %w", err)
	}

	return user, nil
}

// CreateTestTrackingRecord inserts one tracking row. Empty field values are
// kept as '' to match the ingest normalizer's output.
func (tf *TestFixtures) CreateTestTrackingRecord(trackingNumber, shippingMark, dateReceived, eta, status string) (*models.TrackingRecord, error) {
	record := &models.TrackingRecord{
		TrackingNumber: trackingNumber,
		ShippingMark:   shippingMark,
		Quantity:       "1",
		CBM:            "0.25",
		DateReceived:   dateReceived,
		DateLoaded:     dateReceived,
		ETA:            eta,
		Status:         status,
		CreatedAt:      utils.UTCNow(),
		UpdatedAt:      utils.UTCNow(),
	}

	if err := tf.DB.DB.Create(record).Error; err != nil {
		return nil, fmt.Errorf("failed to create test tracking record: %w", err)
	}

	return record, nil
}

// CreateRecentTrackingRecord inserts a row received the given number of days ago
func (tf *TestFixtures) CreateRecentTrackingRecord(trackingNumber, shippingMark string, daysAgo int) (*models.TrackingRecord, error) {
	received := utils.UTCNow().AddDate(0, 0, -daysAgo).Format(utils.DateLayout)
	eta := utils.UTCNow().AddDate(0, 0, utils.TransitDays-daysAgo).Format(utils.DateLayout)
	return tf.CreateTestTrackingRecord(trackingNumber, shippingMark, received, eta, utils.StatusLoaded)
}

// CreateTestSearchLog inserts one search log row
func (tf *TestFixtures) CreateTestSearchLog(term, searchType string, success bool, resultsCount int) (*models.SearchLog, error) {
	ipAddress := "127.0.0.1"
	userAgent := "Test User Agent"

	entry := &models.SearchLog{
		SearchTerm:   term,
		SearchType:   searchType,
		Success:      success,
		ResultsCount: resultsCount,
		IPAddress:    &ipAddress,
		UserAgent:    &userAgent,
		Timestamp:    utils.UTCNow(),
	}

	if err := tf.DB.DB.Create(entry).Error; err != nil {
		return nil, fmt.Errorf("failed to create test search log: %w", err)
	}

	return entry, nil
}

// CreateTestVessel inserts one vessel with unique identifiers
func (tf *TestFixtures) CreateTestVessel(name string) (*models.Vessel, error) {
	vessel := &models.Vessel{
		Name:         name,
		IMO:          fmt.Sprintf("%07d", rand.Intn(9000000)+1000000),
		MMSI:         fmt.Sprintf("%09d", rand.Intn(900000000)+100000000),
		TrackingURL:  "https://www.vesselfinder.com/vessels/" + name,
		ThumbnailURL: "https://example.com/thumbnails/" + name + ".jpg",
		CreatedAt:    utils.UTCNow(),
		UpdatedAt:    utils.UTCNow(),
	}

	if err := tf.DB.DB.Create(vessel).Error; err != nil {
		return nil, fmt.Errorf("failed to create test vessel: %w", err)
	}

	return vessel, nil
}

// CreateExpiredTrackingRecord inserts a delivered row whose ETA has aged past
// the retention window
func (tf *TestFixtures) CreateExpiredTrackingRecord(trackingNumber string) (*models.TrackingRecord, error) {
	eta := utils.UTCNow().AddDate(0, 0, -(utils.RetentionDays + 10)).Format(utils.DateLayout)
	received := utils.UTCNow().AddDate(0, 0, -(utils.RetentionDays + 10 + utils.TransitDays)).Format(utils.DateLayout)
	return tf.CreateTestTrackingRecord(trackingNumber, "EXPIRED-MARK", received, eta, utils.StatusLoaded)
}

// DaysAgo formats a date the given number of days in the past
func DaysAgo(days int) string {
	return time.Now().UTC().AddDate(0, 0, -days).Format(utils.DateLayout)
}
