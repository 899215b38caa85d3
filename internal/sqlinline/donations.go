package sqlinline

const QInsertDonation = `--sql c5d80b44-52f0-4a91-9d1e-6f2ab8e3c7a4
insert into donations(campaign_id, donor_id, amount, donated_at)
values ($1::bigint, $2::text, $3::numeric, $4::timestamptz);
`

const QListDonations = `--sql 2e9b7c1a-8d44-4f06-b3a5-90c4d7e1f8b5
select campaign_id, donor_id, amount::text, donated_at
from donations
order by id;
`

const QListRecentDonations = `--sql 7d1f42cb-3e98-4a67-8c20-5b6e9d0a1c26
select campaign_id, donor_id, amount::text, donated_at
from donations
order by donated_at desc, id desc
limit $1::int;
`
