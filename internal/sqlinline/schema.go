package sqlinline

// Schema for the ledger archive. Amounts are NUMERIC(78,0): integer smallest
// units wide enough for 2^256-scale values.
const QSchema = `--sql 3f2cf5a9-6a1c-4f59-9f07-b1a4f7f9a8d1
create table if not exists campaigns (
    id            bigint primary key,
    owner_id      text        not null,
    title         text        not null,
    description   text        not null,
    target        numeric(78,0) not null,
    deadline      timestamptz not null,
    amount_collected numeric(78,0) not null default 0,
    is_deleted    boolean     not null default false,
    updated_at    timestamptz not null default now()
);

create table if not exists donations (
    id          bigserial primary key,
    campaign_id bigint      not null,
    donor_id    text        not null,
    amount      numeric(78,0) not null,
    donated_at  timestamptz not null
);

create index if not exists donations_campaign_idx on donations (campaign_id, id);

create table if not exists admin_flags (
    identity   text primary key,
    is_admin   boolean     not null,
    updated_at timestamptz not null default now()
);

create table if not exists ledger_events (
    id          uuid primary key,
    kind        text        not null,
    actor_id    text        not null,
    campaign_id bigint      not null,
    donor_id    text        not null default '',
    recipient_id text       not null default '',
    amount      numeric(78,0),
    occurred_at timestamptz not null,
    recorded_at timestamptz not null default now()
);
`
