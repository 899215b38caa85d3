package sqlinline

const QSetAdminFlag = `--sql a4c2e6f8-1b3d-4d5e-9f70-8a9b0c1d2e37
insert into admin_flags(identity, is_admin, updated_at)
values ($1::text, $2::boolean, now())
on conflict (identity) do update set is_admin = excluded.is_admin, updated_at = now();
`

const QListAdminFlags = `--sql 6b8d0f21-43a5-4c79-b1e6-2d3f4a5b6c48
select identity, is_admin
from admin_flags;
`
