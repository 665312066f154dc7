package storage

const (
	// Fee schedule queries
	GetActiveFeeScheduleQuery = `
		SELECT id, corridor, channel, fixed_fee_dop, percent_fee_client, fx_spread_bps,
		       fx_mid, gov_fee_usd, fx_usd_to_dop, partner_flat_htg, partner_percent,
		       partner_min_htg, store_commission_pct, platform_commission_pct,
		       acquiring_cost_dop, active, effective_at, created_at
		FROM fee_schedules
		WHERE corridor = $1 AND channel = $2 AND active = true
		ORDER BY effective_at DESC
		LIMIT 1
	`

	// Agent queries
	GetAgentByIDQuery = `
		SELECT id, name, float_balance_dop, active, created_at, updated_at
		FROM agents
		WHERE id = $1
	`

	// Bloqueo de fila para la secuencia leer-comparar-debitar del float
	GetAgentFloatForUpdateQuery = `
		SELECT float_balance_dop
		FROM agents
		WHERE id = $1
		FOR UPDATE
	`

	DebitAgentFloatQuery = `
		UPDATE agents
		SET float_balance_dop = float_balance_dop - $1, updated_at = now()
		WHERE id = $2
	`

	// Remittance queries
	remittanceColumns = `
		id, reference, agent_id, sender_name, sender_doc, sender_phone,
		beneficiary_name, beneficiary_phone, channel, origin_ip, schedule_id,
		principal_dop, fx_mid, fx_client_sell, client_fee_fixed_dop,
		client_fee_percent_dop, total_client_fees_dop, total_client_pays_dop,
		gov_fee_dop, amount_before_partner_fee_htg, partner_fee_htg,
		beneficiary_receives_htg, partner_cost_dop, store_commission_dop,
		acquiring_cost_dop, fx_spread_revenue_dop, platform_revenue_dop,
		total_costs_dop, platform_margin_dop, state, receipt_hash, payout_ref,
		created_at, confirmed_at, updated_at`

	CreateRemittanceQuery = `
		INSERT INTO remittances (
			id, reference, agent_id, sender_name, sender_doc, sender_phone,
			beneficiary_name, beneficiary_phone, channel, origin_ip, schedule_id,
			principal_dop, fx_mid, fx_client_sell, client_fee_fixed_dop,
			client_fee_percent_dop, total_client_fees_dop, total_client_pays_dop,
			gov_fee_dop, amount_before_partner_fee_htg, partner_fee_htg,
			beneficiary_receives_htg, partner_cost_dop, store_commission_dop,
			acquiring_cost_dop, fx_spread_revenue_dop, platform_revenue_dop,
			total_costs_dop, platform_margin_dop, state
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
			$16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30
		)
	`

	GetRemittanceByIDQuery = `
		SELECT ` + remittanceColumns + `
		FROM remittances
		WHERE id = $1
	`

	GetRemittanceByReferenceQuery = `
		SELECT ` + remittanceColumns + `
		FROM remittances
		WHERE reference = $1
	`

	// Serializa confirmaciones concurrentes sobre la misma remesa
	GetRemittanceForUpdateQuery = `
		SELECT ` + remittanceColumns + `
		FROM remittances
		WHERE id = $1
		FOR UPDATE
	`

	ConfirmRemittanceQuery = `
		UPDATE remittances
		SET state = 'CONFIRMED', receipt_hash = $2, confirmed_at = $3, updated_at = now()
		WHERE id = $1 AND state = 'QUOTED'
	`

	UpdateRemittanceStateQuery = `
		UPDATE remittances
		SET state = $2, payout_ref = COALESCE(NULLIF($3, ''), payout_ref), updated_at = now()
		WHERE id = $1
	`

	AppendRemittanceEventQuery = `
		INSERT INTO remittance_events (id, remittance_id, event, actor, metadata)
		VALUES ($1, $2, $3, $4, $5)
	`

	GetRemittanceEventsQuery = `
		SELECT id, remittance_id, event, actor, metadata, created_at
		FROM remittance_events
		WHERE remittance_id = $1
		ORDER BY created_at
	`

	// Risk aggregate queries. FAILED transactions never count against limits.
	CountSenderTxSinceQuery = `
		SELECT COUNT(*)
		FROM remittances
		WHERE sender_doc = $1 AND created_at >= $2 AND state <> 'FAILED'
	`

	SumSenderAmountSinceQuery = `
		SELECT COALESCE(SUM(principal_dop), 0)
		FROM remittances
		WHERE sender_doc = $1 AND created_at >= $2 AND state <> 'FAILED'
	`

	LastSenderTxAtQuery = `
		SELECT MAX(created_at)
		FROM remittances
		WHERE sender_doc = $1 AND state <> 'FAILED'
	`

	CountPairTxSinceQuery = `
		SELECT COUNT(*)
		FROM remittances
		WHERE sender_doc = $1 AND beneficiary_phone = $2 AND created_at >= $3 AND state <> 'FAILED'
	`

	CountIPTxSinceQuery = `
		SELECT COUNT(*)
		FROM remittances
		WHERE origin_ip = $1 AND created_at >= $2 AND state <> 'FAILED'
	`

	// Ledger queries
	UpsertLedgerAccountQuery = `
		INSERT INTO ledger_accounts (id, code, currency, agent_id)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (code) DO NOTHING
	`

	GetLedgerAccountByCodeQuery = `
		SELECT id, code, currency, agent_id, created_at
		FROM ledger_accounts
		WHERE code = $1
	`

	InsertLedgerEntryQuery = `
		INSERT INTO ledger_entries (
			id, transaction_id, debit_account_id, credit_account_id,
			amount, currency, remittance_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	GetLedgerEntriesByRemittanceQuery = `
		SELECT id, transaction_id, debit_account_id, credit_account_id,
		       amount, currency, remittance_id, created_at
		FROM ledger_entries
		WHERE remittance_id = $1
		ORDER BY created_at
	`

	// Risk flag queries
	CreateRiskFlagQuery = `
		INSERT INTO risk_flags (
			id, entity_type, entity_id, flag_type, severity, description, metadata
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	ListUnresolvedRiskFlagsQuery = `
		SELECT id, entity_type, entity_id, flag_type, severity, description,
		       resolved, resolved_by, resolution_note, resolved_at, metadata, created_at
		FROM risk_flags
		WHERE resolved = false
		ORDER BY created_at DESC
		LIMIT $1
	`

	ResolveRiskFlagQuery = `
		UPDATE risk_flags
		SET resolved = true, resolved_by = $2, resolution_note = $3, resolved_at = now()
		WHERE id = $1 AND resolved = false
	`
)
