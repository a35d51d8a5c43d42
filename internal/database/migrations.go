package database

import (
	"fmt"
	"log/slog"
)

func (db *DB) RunMigrations() error {
	slog.Info("Running database migrations...")

	migrations := []string{
		createExtensions,
		createUsersTable,
		createCollegesTable,
		createCategoriesTable,
		createEventsTable,
		createTeamPricingTiersTable,
		createRegistrationsTable,
		createTeamsTable,
		createTeamMembersTable,
		createTicketsTable,
		createPaymentsTable,
		createNotificationsTable,
		createEventsIndexes,
	}

	for i, migration := range migrations {
		slog.Info("Running migration", "step", i+1)
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	slog.Info("All migrations completed successfully")
	return nil
}

const createExtensions = `
CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`

const createUsersTable = `
CREATE TABLE IF NOT EXISTS users (
    id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
    email VARCHAR(255) UNIQUE NOT NULL,
    password_hash VARCHAR(64) NOT NULL,
    full_name VARCHAR(200) NOT NULL,
    role VARCHAR(20) NOT NULL DEFAULT 'student',
    college_id UUID,
    registered_at TIMESTAMP NOT NULL DEFAULT NOW(),
    is_active BOOLEAN NOT NULL DEFAULT TRUE,
    last_logged_in TIMESTAMP NOT NULL DEFAULT NOW(),

    CHECK (role IN ('student', 'organizer', 'admin'))
);`

const createCollegesTable = `
CREATE TABLE IF NOT EXISTS colleges (
    id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
    name VARCHAR(300) NOT NULL,
    location VARCHAR(300) NOT NULL,
    description TEXT,
    website VARCHAR(300),
    established_year INTEGER,
    contact_email VARCHAR(255),
    contact_phone VARCHAR(30),
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMP NOT NULL DEFAULT NOW()
);`

const createCategoriesTable = `
CREATE TABLE IF NOT EXISTS categories (
    id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
    name VARCHAR(100) UNIQUE NOT NULL,
    description TEXT,
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMP NOT NULL DEFAULT NOW()
);`

const createEventsTable = `
CREATE TABLE IF NOT EXISTS events (
    id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
    title VARCHAR(500) NOT NULL,
    description TEXT NOT NULL,
    organizer_id UUID NOT NULL REFERENCES users(id),
    college_id UUID REFERENCES colleges(id),
    category_id UUID REFERENCES categories(id),
    event_status VARCHAR(20) NOT NULL DEFAULT 'draft',
    participation_type VARCHAR(20) NOT NULL DEFAULT 'individual',
    team_size_min INTEGER,
    team_size_max INTEGER,
    start_date TIMESTAMP NOT NULL,
    end_date TIMESTAMP NOT NULL,
    location VARCHAR(300) NOT NULL,
    venue_details TEXT,
    max_attendees INTEGER,
    current_attendees INTEGER NOT NULL DEFAULT 0,
    registration_deadline TIMESTAMP,
    is_global BOOLEAN NOT NULL DEFAULT FALSE,
    tags TEXT[] NOT NULL DEFAULT '{}',
    individual_price BIGINT NOT NULL DEFAULT 0,
    team_base_price BIGINT NOT NULL DEFAULT 0,
    price_per_member BIGINT NOT NULL DEFAULT 0,
    has_custom_team_pricing BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMP NOT NULL DEFAULT NOW(),

    CHECK (event_status IN ('draft', 'published', 'cancelled', 'completed')),
    CHECK (participation_type IN ('individual', 'team', 'both')),
    CHECK (team_size_min IS NULL OR team_size_max IS NULL OR team_size_min <= team_size_max),
    CHECK (max_attendees IS NULL OR current_attendees <= max_attendees)
);`

const createTeamPricingTiersTable = `
CREATE TABLE IF NOT EXISTS team_pricing_tiers (
    id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
    event_id UUID NOT NULL REFERENCES events(id) ON DELETE CASCADE,
    min_members INTEGER NOT NULL,
    max_members INTEGER NOT NULL,
    price BIGINT NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),

    CHECK (min_members <= max_members),
    CHECK (price >= 0)
);`

const createRegistrationsTable = `
CREATE TABLE IF NOT EXISTS registrations (
    id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
    event_id UUID NOT NULL REFERENCES events(id) ON DELETE CASCADE,
    user_id UUID NOT NULL REFERENCES users(id),
    registration_status VARCHAR(20) NOT NULL DEFAULT 'pending',
    registration_date TIMESTAMP NOT NULL DEFAULT NOW(),
    attended_at TIMESTAMP,
    is_team BOOLEAN NOT NULL DEFAULT FALSE,
    team_size INTEGER NOT NULL DEFAULT 1,
    team_name VARCHAR(200),
    team_leader_name VARCHAR(200),
    team_leader_phone VARCHAR(30),
    team_leader_email VARCHAR(255),
    team_leader_university_reg VARCHAR(100),
    payment_status VARCHAR(20) NOT NULL DEFAULT 'pending',
    payment_amount BIGINT NOT NULL DEFAULT 0,
    payment_method VARCHAR(50),
    transaction_id VARCHAR(255),
    paid_at TIMESTAMP,
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMP NOT NULL DEFAULT NOW(),

    CHECK (registration_status IN ('pending', 'confirmed', 'cancelled', 'attended')),
    CHECK (payment_status IN ('pending', 'processing', 'completed', 'failed', 'refunded'))
);`

const createTeamsTable = `
CREATE TABLE IF NOT EXISTS teams (
    id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
    registration_id UUID UNIQUE NOT NULL REFERENCES registrations(id) ON DELETE CASCADE,
    event_id UUID NOT NULL REFERENCES events(id) ON DELETE CASCADE,
    team_name VARCHAR(200) NOT NULL,
    team_leader_id UUID REFERENCES users(id),
    team_leader_name VARCHAR(200) NOT NULL,
    team_leader_phone VARCHAR(30),
    team_leader_email VARCHAR(255),
    team_leader_university_reg VARCHAR(100),
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMP NOT NULL DEFAULT NOW()
);`

const createTeamMembersTable = `
CREATE TABLE IF NOT EXISTS team_members (
    id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
    team_id UUID NOT NULL REFERENCES teams(id) ON DELETE CASCADE,
    member_name VARCHAR(200) NOT NULL,
    member_email VARCHAR(255),
    member_phone VARCHAR(30),
    university_registration_number VARCHAR(100),
    is_leader BOOLEAN NOT NULL DEFAULT FALSE,
    joined_at TIMESTAMP NOT NULL DEFAULT NOW()
);`

const createTicketsTable = `
CREATE TABLE IF NOT EXISTS tickets (
    id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
    event_id UUID NOT NULL REFERENCES events(id) ON DELETE CASCADE,
    registration_id UUID UNIQUE REFERENCES registrations(id) ON DELETE CASCADE,
    ticket_type VARCHAR(20) NOT NULL DEFAULT 'paid',
    price BIGINT NOT NULL DEFAULT 0,
    ticket_code VARCHAR(50) UNIQUE NOT NULL,
    is_valid BOOLEAN NOT NULL DEFAULT TRUE,
    issued_at TIMESTAMP NOT NULL DEFAULT NOW(),
    used_at TIMESTAMP,
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMP NOT NULL DEFAULT NOW(),

    CHECK (ticket_type IN ('free', 'paid', 'vip', 'early_bird'))
);`

const createPaymentsTable = `
CREATE TABLE IF NOT EXISTS payments (
    id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
    registration_id UUID NOT NULL REFERENCES registrations(id) ON DELETE CASCADE,
    ticket_id UUID REFERENCES tickets(id),
    amount BIGINT NOT NULL,
    payment_status VARCHAR(20) NOT NULL DEFAULT 'pending',
    payment_method VARCHAR(50),
    transaction_id VARCHAR(255),
    payment_date TIMESTAMP,
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMP NOT NULL DEFAULT NOW(),

    CHECK (payment_status IN ('pending', 'processing', 'completed', 'failed', 'refunded'))
);`

const createNotificationsTable = `
CREATE TABLE IF NOT EXISTS notifications (
    id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
    user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    title VARCHAR(300) NOT NULL,
    message TEXT NOT NULL,
    notification_type VARCHAR(30) NOT NULL DEFAULT 'info',
    read BOOLEAN NOT NULL DEFAULT FALSE,
    event_id UUID,
    registration_id UUID,
    team_id UUID,
    created_at TIMESTAMP NOT NULL DEFAULT NOW()
);`

const createEventsIndexes = `
CREATE INDEX IF NOT EXISTS idx_events_status_start ON events (event_status, start_date);
CREATE INDEX IF NOT EXISTS idx_registrations_event ON registrations (event_id);
CREATE INDEX IF NOT EXISTS idx_registrations_user ON registrations (user_id);
CREATE INDEX IF NOT EXISTS idx_tiers_event ON team_pricing_tiers (event_id);
CREATE INDEX IF NOT EXISTS idx_team_members_team ON team_members (team_id);
CREATE INDEX IF NOT EXISTS idx_teams_event ON teams (event_id);`
