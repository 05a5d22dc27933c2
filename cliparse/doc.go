// Copyright (c) 2026 KU Polls Authors. All rights reserved.

/*
Package cliparse parses server configuration from CLI flags and
environment variables. Flags win over env values.

Settings:

  - PORT (-p): server port (default 8000)
  - DATABASE_URL (-d): connection string (default file:kupolls.db for sqlite)
  - DATABASE_TYPE (-t): sqlite or postgres (default sqlite)
  - SESSION_SECRET (-session-secret): cookie signing secret, required
  - ADMIN_USERNAME / ADMIN_PASSWORD: optional staff account seeded at startup
  - HIDE_CLOSED (-hide-closed): exclude closed questions from the index
*/
package cliparse
