package store

// SQL query constants organized by entity.
// All SQL lives here; PostgresStore methods reference these constants.

// Account queries.
const (
	accountColumns = `account_key, user_id, username, environment,
			access_token, refresh_token, token_expiry,
			needs_reauth, reauth_reason, connected_at, last_used_at`

	queryUpsertAccount = `
		INSERT INTO accounts (
			account_key, user_id, username, environment,
			access_token, refresh_token, token_expiry,
			needs_reauth, reauth_reason, connected_at, last_used_at, updated_at
		) VALUES (
			@account_key, @user_id, @username, @environment,
			@access_token, @refresh_token, @token_expiry,
			false, '', @connected_at, @last_used_at, now()
		)
		ON CONFLICT (account_key) DO UPDATE SET
			username      = EXCLUDED.username,
			access_token  = EXCLUDED.access_token,
			refresh_token = EXCLUDED.refresh_token,
			token_expiry  = EXCLUDED.token_expiry,
			needs_reauth  = false,
			reauth_reason = '',
			last_used_at  = COALESCE(EXCLUDED.last_used_at, accounts.last_used_at),
			updated_at    = now()
		RETURNING connected_at`

	queryGetAccount = `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE account_key = $1`

	queryListAccounts = `
		SELECT ` + accountColumns + `
		FROM accounts
		ORDER BY last_used_at DESC NULLS LAST, account_key ASC`

	queryUpdateAccountTokens = `
		UPDATE accounts SET
			access_token  = $2,
			refresh_token = $3,
			token_expiry  = $4,
			needs_reauth  = false,
			reauth_reason = '',
			updated_at    = now()
		WHERE account_key = $1`

	queryMarkAccountNeedsReauth = `
		UPDATE accounts SET
			needs_reauth  = true,
			reauth_reason = $2,
			updated_at    = now()
		WHERE account_key = $1`

	queryTouchAccount = `
		UPDATE accounts SET last_used_at = $2 WHERE account_key = $1`

	queryDeleteAccount = `
		DELETE FROM accounts WHERE account_key = $1`

	queryGetActiveAccountKey = `
		SELECT COALESCE(account_key, '') FROM active_account WHERE id = 1`

	querySetActiveAccountKey = `
		INSERT INTO active_account (id, account_key, updated_at)
		VALUES (1, NULLIF($1, ''), now())
		ON CONFLICT (id) DO UPDATE SET
			account_key = EXCLUDED.account_key,
			updated_at  = now()`

	queryGetSetting = `
		SELECT value FROM app_settings WHERE name = $1`

	querySetSetting = `
		INSERT INTO app_settings (name, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (name) DO UPDATE SET
			value      = EXCLUDED.value,
			updated_at = now()`
)

// Listing queries.
const (
	listingColumns = `sku, card_id, remote_item_id, remote_offer_id, status, environment,
			account_key, account_user_id, account_username,
			title, description, price, condition, category_id, image_urls,
			location_key, listing_url, error_message, failed_stage,
			created_at, listed_at, last_updated,
			watch_count, view_count, bid_count, current_price, time_remaining, last_synced_at`

	queryCreateListing = `
		INSERT INTO listings (
			sku, card_id, remote_item_id, remote_offer_id, status, environment,
			account_key, account_user_id, account_username,
			title, description, price, condition, category_id, image_urls,
			location_key, listing_url, error_message, failed_stage,
			created_at, listed_at, last_updated
		) VALUES (
			@sku, @card_id, @remote_item_id, @remote_offer_id, @status, @environment,
			@account_key, @account_user_id, @account_username,
			@title, @description, @price, @condition, @category_id, @image_urls,
			@location_key, @listing_url, @error_message, @failed_stage,
			@created_at, @listed_at, @last_updated
		)`

	queryUpdateListing = `
		UPDATE listings SET
			remote_item_id  = @remote_item_id,
			remote_offer_id = @remote_offer_id,
			status          = @status,
			title           = @title,
			description     = @description,
			price           = @price,
			condition       = @condition,
			category_id     = @category_id,
			image_urls      = @image_urls,
			location_key    = @location_key,
			listing_url     = @listing_url,
			error_message   = @error_message,
			failed_stage    = @failed_stage,
			listed_at       = @listed_at,
			last_updated    = @last_updated
		WHERE sku = @sku`

	queryGetListing = `
		SELECT ` + listingColumns + `
		FROM listings
		WHERE sku = $1`

	queryUpdateListingCache = `
		UPDATE listings SET
			watch_count    = @watch_count,
			view_count     = @view_count,
			bid_count      = @bid_count,
			current_price  = @current_price,
			time_remaining = @time_remaining,
			last_synced_at = @last_synced_at
		WHERE environment = @environment AND remote_item_id = @remote_item_id`
)

// Sync log queries.
const (
	syncLogColumns = `sync_id, account_key, started_at, completed_at,
			items_synced, api_calls_made, status, error_message`

	queryInsertSyncLog = `
		INSERT INTO sync_log (sync_id, account_key, started_at, status)
		VALUES ($1, $2, $3, $4)`

	queryCompleteSyncLog = `
		UPDATE sync_log SET
			completed_at   = $2,
			items_synced   = $3,
			api_calls_made = $4,
			status         = $5,
			error_message  = $6
		WHERE sync_id = $1`

	queryLatestSync = `
		SELECT ` + syncLogColumns + `
		FROM sync_log
		WHERE account_key = $1 AND status = $2
		ORDER BY started_at DESC
		LIMIT 1`

	queryListSyncLog = `
		SELECT ` + syncLogColumns + `
		FROM sync_log
		WHERE account_key = $1
		ORDER BY started_at DESC
		LIMIT $2`

	queryRecoverAbandonedSyncs = `
		UPDATE sync_log SET
			status        = 'failed',
			completed_at  = $2,
			error_message = $3
		WHERE status = 'in_progress' AND started_at < $1`
)
