// Copyright (c) 2025-2026 HTW Labs
// SPDX-License-Identifier: GPL-3.0-or-later

// Package lifecycle implements the event lifecycle state machine: which
// status transitions are legal, who may trigger them, and what data must be
// present before a transition succeeds. Every operation takes an explicit
// Caller so tests can supply arbitrary identities without faking a session
// provider.
package lifecycle

import "github.com/htwlabs/eventdesk/internal/auth"

// Caller is the resolved identity and role of the user invoking an
// operation. The core trusts it once resolved; credential verification is
// the identity provider's concern.
type Caller = auth.Caller
