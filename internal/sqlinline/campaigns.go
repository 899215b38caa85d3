package sqlinline

const QUpsertCampaign = `--sql 51b4a0de-9f6e-4c83-8b7b-2d5de0f9c6a2
insert into campaigns(id, owner_id, title, description, target, deadline, amount_collected, is_deleted, updated_at)
values ($1::bigint, $2::text, $3::text, $4::text, $5::numeric, $6::timestamptz, $7::numeric, $8::boolean, now())
on conflict (id) do update set
    title            = excluded.title,
    description      = excluded.description,
    target           = excluded.target,
    amount_collected = excluded.amount_collected,
    is_deleted       = excluded.is_deleted,
    updated_at       = now();
`

const QListCampaigns = `--sql 8f1e63f2-0c0b-4b8c-9a6e-7b54c1d2e9b3
select id, owner_id, title, description, target::text, deadline, amount_collected::text, is_deleted
from campaigns
order by id;
`
