package sqlstore

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS clients (
		clientid INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		email TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		productid INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		description TEXT,
		price NUMERIC(10, 2) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		orderid INTEGER PRIMARY KEY AUTOINCREMENT,
		clientid INTEGER NOT NULL,
		orderdate DATETIME NOT NULL,
		FOREIGN KEY (clientid) REFERENCES clients(clientid)
	)`,
	`CREATE TABLE IF NOT EXISTS orderdetails (
		orderdetailid INTEGER PRIMARY KEY AUTOINCREMENT,
		orderid INTEGER NOT NULL,
		productid INTEGER NOT NULL,
		quantity INTEGER NOT NULL CHECK (quantity > 0),
		FOREIGN KEY (orderid) REFERENCES orders(orderid),
		FOREIGN KEY (productid) REFERENCES products(productid)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_clientid ON orders(clientid)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_orderdate ON orders(orderdate)`,
	`CREATE INDEX IF NOT EXISTS idx_orderdetails_orderid ON orderdetails(orderid)`,
	`CREATE INDEX IF NOT EXISTS idx_orderdetails_productid ON orderdetails(productid)`,
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS clients (
		clientid SERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		productid SERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT,
		price NUMERIC(10, 2) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		orderid SERIAL PRIMARY KEY,
		clientid INTEGER NOT NULL REFERENCES clients(clientid),
		orderdate TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS orderdetails (
		orderdetailid SERIAL PRIMARY KEY,
		orderid INTEGER NOT NULL REFERENCES orders(orderid),
		productid INTEGER NOT NULL REFERENCES products(productid),
		quantity INTEGER NOT NULL CHECK (quantity > 0)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_clientid ON orders(clientid)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_orderdate ON orders(orderdate)`,
	`CREATE INDEX IF NOT EXISTS idx_orderdetails_orderid ON orderdetails(orderid)`,
	`CREATE INDEX IF NOT EXISTS idx_orderdetails_productid ON orderdetails(productid)`,
}
