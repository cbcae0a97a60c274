package database

import (
	"database/sql"
	"fmt"
)

// Migrate bootstraps the schema. Statements are idempotent so the server
// can run them unconditionally at startup.
func Migrate(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
			username VARCHAR(191) NOT NULL,
			password_hash VARCHAR(255) NOT NULL,
			role ENUM('user','employee') NOT NULL DEFAULT 'user',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (id),
			UNIQUE KEY uq_users_username (username)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
		`CREATE TABLE IF NOT EXISTS movies (
			id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
			title VARCHAR(255) NOT NULL,
			year INT NOT NULL,
			genre VARCHAR(100) NOT NULL DEFAULT '',
			rating DOUBLE NOT NULL DEFAULT 0,
			status ENUM('available','pending','offline') NOT NULL DEFAULT 'available',
			poster_path VARCHAR(512) NULL,
			PRIMARY KEY (id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
		`CREATE TABLE IF NOT EXISTS applications (
			id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
			applicant_name VARCHAR(255) NOT NULL,
			applicant_email VARCHAR(255) NOT NULL,
			description TEXT NOT NULL,
			status ENUM('new','pending','accepted','rejected') NOT NULL DEFAULT 'new',
			user_id BIGINT UNSIGNED NOT NULL,
			image_path VARCHAR(512) NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (id),
			KEY idx_applications_user (user_id),
			KEY idx_applications_email (applicant_email)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
		`CREATE TABLE IF NOT EXISTS chats (
			id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
			user_id BIGINT UNSIGNED NOT NULL,
			admin_id BIGINT UNSIGNED NULL,
			status ENUM('pending','accepted') NOT NULL DEFAULT 'pending',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (id),
			KEY idx_chats_status (status),
			KEY idx_chats_admin (admin_id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
		`CREATE TABLE IF NOT EXISTS chat_messages (
			id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
			chat_id BIGINT UNSIGNED NOT NULL,
			sender ENUM('user','employee') NOT NULL,
			message TEXT NOT NULL,
			created_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
			PRIMARY KEY (id),
			KEY idx_chat_messages_chat (chat_id),
			CONSTRAINT fk_chat_messages_chat FOREIGN KEY (chat_id) REFERENCES chats (id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	}

	for i, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return fmt.Errorf("migrate stmt %d: %w", i, err)
		}
	}
	return nil
}
