package sqlinline

const QInsertLedgerEvent = `--sql 9e5a7c3b-2f61-4d84-a0b9-1c2d3e4f5a59
insert into ledger_events(id, kind, actor_id, campaign_id, donor_id, recipient_id, amount, occurred_at)
values ($1::uuid, $2::text, $3::text, $4::bigint, $5::text, $6::text, nullif($7::text, '')::numeric, $8::timestamptz);
`
