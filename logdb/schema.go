// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

// create tables for executed calls, their attributes and payments
const callTableSchema = `
CREATE TABLE IF NOT EXISTS call (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	time INTEGER NOT NULL,
	caller BLOB(20) NOT NULL,
	action TEXT NOT NULL,
	success INTEGER NOT NULL,
	error TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS callActionIndex ON call(action);
CREATE INDEX IF NOT EXISTS callCallerIndex ON call(caller);
`

const attributeTableSchema = `
CREATE TABLE IF NOT EXISTS attribute (
	seq INTEGER NOT NULL,
	attrIndex INTEGER NOT NULL,
	key TEXT NOT NULL,
	value TEXT NOT NULL,
	PRIMARY KEY (seq, attrIndex)
);
`

const paymentTableSchema = `
CREATE TABLE IF NOT EXISTS payment (
	seq INTEGER NOT NULL,
	paymentIndex INTEGER NOT NULL,
	recipient BLOB(20) NOT NULL,
	denom TEXT NOT NULL,
	amount BLOB(32) NOT NULL,
	PRIMARY KEY (seq, paymentIndex)
);

CREATE INDEX IF NOT EXISTS paymentRecipientIndex ON payment(recipient);
`
